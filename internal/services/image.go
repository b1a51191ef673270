package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// decodeAndPersistImage decodes a base64 raster image, resizes it to the
// canonical frame when its native dimensions differ, and writes it as PNG.
// Any decode failure is an *AssetError — the one terminal input error in
// the pipeline.
func decodeAndPersistImage(imageB64, outputPath string) error {
	data, err := base64.StdEncoding.DecodeString(imageB64)
	if err != nil {
		return &AssetError{Reason: "invalid base64 image payload", Err: err}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return &AssetError{Reason: "undecodable image data", Err: err}
	}

	bounds := img.Bounds()
	if bounds.Dx() != frameWidth || bounds.Dy() != frameHeight {
		resized := image.NewRGBA(image.Rect(0, 0, frameWidth, frameHeight))
		draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)
		img = resized
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create image asset: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("failed to encode image asset: %w", err)
	}
	return nil
}
