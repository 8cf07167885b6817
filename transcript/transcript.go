// Package transcript layers WHIR's public-coin interaction (spec.md §6) on
// top of the teacher's own label-keyed Fiat-Shamir transcript
// (gnark-crypto/fiat-shamir), the same primitive fri.go uses to derive its
// folding challenges and query positions.
package transcript

import (
	"encoding/binary"
	"errors"
	"hash"
	"math/bits"

	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"
	"github.com/whir-go/whir/poly"
)

// F is the field element type shared with package poly.
type F = poly.F

// ErrChallengeOrder is returned when a caller asks for a label outside the
// pre-declared schedule, or out of its declared order.
var ErrChallengeOrder = errors.New("transcript: label not in schedule or used out of order")

// Transcript is a strictly-ordered, label-keyed Fiat-Shamir transcript. Every
// label it will ever absorb or squeeze must be declared up front (see
// Schedule), mirroring fiatshamir.NewTranscript's own requirement that every
// challenge ID be known in advance.
type Transcript struct {
	fs *fiatshamir.Transcript
	h  hash.Hash
}

// New wraps h into a transcript that can use exactly the labels in schedule,
// in the order they appear.
func New(h hash.Hash, schedule []string) *Transcript {
	return &Transcript{fs: fiatshamir.NewTranscript(h, schedule...), h: h}
}

// AbsorbBytes binds raw bytes to label.
func (t *Transcript) AbsorbBytes(label string, data []byte) error {
	return t.fs.Bind(label, data)
}

// AbsorbScalars binds the canonical encodings of xs to label, in order.
func (t *Transcript) AbsorbScalars(label string, xs ...F) error {
	for _, x := range xs {
		if err := t.fs.Bind(label, x.Marshal()); err != nil {
			return err
		}
	}
	return nil
}

// SqueezeBytes finalizes label and returns its challenge bytes.
func (t *Transcript) SqueezeBytes(label string) ([]byte, error) {
	return t.fs.ComputeChallenge(label)
}

// SqueezeScalar finalizes label and interprets its challenge bytes as a
// field element.
func (t *Transcript) SqueezeScalar(label string) (F, error) {
	b, err := t.fs.ComputeChallenge(label)
	if err != nil {
		var zero F
		return zero, err
	}
	var x F
	x.SetBytes(b)
	return x, nil
}

// SqueezeScalars finalizes one label per requested scalar (subLabels, built
// by Schedule to be unique and pre-declared) and returns them in order.
func (t *Transcript) SqueezeScalars(subLabels []string) ([]F, error) {
	out := make([]F, len(subLabels))
	for i, label := range subLabels {
		x, err := t.SqueezeScalar(label)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}

// SqueezeIndex finalizes label and reduces its challenge bytes modulo bound,
// returning an index in [0, bound).
func (t *Transcript) SqueezeIndex(label string, bound int) (int, error) {
	b, err := t.SqueezeBytes(label)
	if err != nil {
		return 0, err
	}
	var acc uint64
	for _, by := range b {
		acc = acc<<8 | uint64(by)
	}
	return int(acc % uint64(bound)), nil
}

// SqueezeIndices finalizes one label per requested index and reduces each
// modulo bound.
func (t *Transcript) SqueezeIndices(subLabels []string, bound int) ([]int, error) {
	out := make([]int, len(subLabels))
	for i, label := range subLabels {
		idx, err := t.SqueezeIndex(label, bound)
		if err != nil {
			return nil, err
		}
		out[i] = idx
	}
	return out, nil
}

// PowGrind performs Fiat-Shamir grinding for bits of proof-of-work: it
// squeezes a seed from seedLabel, searches nonce space locally for a nonce
// whose hash of (seed || nonce) has at least bits leading zero bits, then
// binds the winning nonce to nonceLabel so both parties' transcripts advance
// identically. bits == 0 is a no-op that still advances nonceLabel with
// nonce 0, keeping the schedule uniform across configurations.
func (t *Transcript) PowGrind(seedLabel, nonceLabel string, bits int) (uint64, error) {
	seed, err := t.SqueezeBytes(seedLabel)
	if err != nil {
		return 0, err
	}

	var nonce uint64
	if bits > 0 {
		for {
			if leadingZeroBits(grindDigest(t.h, seed, nonce)) >= bits {
				break
			}
			nonce++
		}
	}

	nonceBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(nonceBytes, nonce)
	if err := t.AbsorbBytes(nonceLabel, nonceBytes); err != nil {
		return 0, err
	}
	if _, err := t.SqueezeBytes(nonceLabel); err != nil {
		return 0, err
	}
	return nonce, nil
}

// VerifyPow squeezes seedLabel, checks that nonce meets the bit requirement
// against it, then binds nonce to nonceLabel and squeezes it, advancing the
// transcript identically to a matching PowGrind call. It reports
// ErrChallengeOrder-independent failure via its bool return, not an error,
// since a failed grind is a protocol rejection, not a transcript fault.
func (t *Transcript) VerifyPow(seedLabel, nonceLabel string, bits int, nonce uint64) (bool, error) {
	seed, err := t.SqueezeBytes(seedLabel)
	if err != nil {
		return false, err
	}
	ok := CheckPow(t.h, seed, nonce, bits)

	nonceBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(nonceBytes, nonce)
	if err := t.AbsorbBytes(nonceLabel, nonceBytes); err != nil {
		return false, err
	}
	if _, err := t.SqueezeBytes(nonceLabel); err != nil {
		return false, err
	}
	return ok, nil
}

// CheckPow recomputes the grinding digest for a claimed nonce and reports
// whether it meets the bit requirement, without advancing the transcript.
func CheckPow(h hash.Hash, seed []byte, nonce uint64, bits int) bool {
	if bits == 0 {
		return true
	}
	return leadingZeroBits(grindDigest(h, seed, nonce)) >= bits
}

func grindDigest(h hash.Hash, seed []byte, nonce uint64) []byte {
	h.Reset()
	h.Write(seed)
	nonceBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(nonceBytes, nonce)
	h.Write(nonceBytes)
	return h.Sum(nil)
}

func leadingZeroBits(digest []byte) int {
	count := 0
	for _, b := range digest {
		if b == 0 {
			count += 8
			continue
		}
		count += bits.LeadingZeros8(b)
		break
	}
	return count
}
