package services

import "fmt"

// AssetError reports a malformed or undecodable input asset (currently the
// image payload). It is terminal: the composition is abandoned immediately
// and the error is surfaced to the caller.
type AssetError struct {
	Reason string
	Err    error
}

func (e *AssetError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("asset error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("asset error: %s", e.Reason)
}

func (e *AssetError) Unwrap() error { return e.Err }

// EncodeError reports that every encoder tier failed. Tier is the last
// (most minimal) tier attempted; Err is its failure.
type EncodeError struct {
	Tier EncodeTier
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode failed after all tiers (last tier %s): %v", e.Tier, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
