// Package bls wraps the herumi BLS12-381 implementation behind the small
// surface this core needs: key derivation, signing, verification and
// public key aggregation. Callers treat every operation as pass/fail.
package bls

import (
	"errors"
	"fmt"

	herumi "github.com/herumi/bls-eth-go-binary/bls"

	"github.com/geanlabs/beam/types"
)

func init() {
	if err := herumi.Init(herumi.BLS12_381); err != nil {
		panic(err)
	}
	if err := herumi.SetETHmode(herumi.EthModeDraft07); err != nil {
		panic(err)
	}
	// Subgroup order checks for deserialized points.
	herumi.VerifyPublicKeyOrder(true)
	herumi.VerifySignatureOrder(true)
}

// SecretKeyLength is the byte length of a serialized secret key.
const SecretKeyLength = 32

var (
	ErrSecretKeyLength = errors.New("secret key must be 32 bytes")
	ErrZeroKey         = errors.New("secret key is zero")
)

// SecretKey is a BLS secret key.
type SecretKey struct {
	k *herumi.SecretKey
}

// RandKey generates a secret key from the system randomness source.
func RandKey() *SecretKey {
	k := &herumi.SecretKey{}
	k.SetByCSPRNG()
	return &SecretKey{k: k}
}

// SecretKeyFromBytes builds a secret key from a 32-byte scalar, reduced
// modulo the curve order.
func SecretKeyFromBytes(b []byte) (*SecretKey, error) {
	if len(b) != SecretKeyLength {
		return nil, ErrSecretKeyLength
	}
	k := &herumi.SecretKey{}
	if err := k.SetLittleEndianMod(b); err != nil {
		return nil, fmt.Errorf("deserialize secret key: %w", err)
	}
	if k.IsZero() {
		return nil, ErrZeroKey
	}
	return &SecretKey{k: k}, nil
}

// PublicKey returns the corresponding public key.
func (s *SecretKey) PublicKey() types.BLSPubkey {
	var out types.BLSPubkey
	copy(out[:], s.k.GetPublicKey().Serialize())
	return out
}

// Sign signs a 32-byte message root.
func (s *SecretKey) Sign(msg []byte) types.BLSSignature {
	var out types.BLSSignature
	copy(out[:], s.k.SignByte(msg).Serialize())
	return out
}

// Marshal serializes the secret key.
func (s *SecretKey) Marshal() []byte {
	return s.k.Serialize()
}

// Verify checks a signature by pubkey over a message root. Malformed
// points verify as false, never as an error; the caller contract is
// strictly pass/fail.
func Verify(sig types.BLSSignature, msg []byte, pubkey types.BLSPubkey) bool {
	pub := &herumi.PublicKey{}
	if err := pub.Deserialize(pubkey[:]); err != nil {
		return false
	}
	sg := &herumi.Sign{}
	if err := sg.Deserialize(sig[:]); err != nil {
		return false
	}
	return sg.VerifyByte(pub, msg)
}

// AggregatePublicKeys aggregates compressed public keys into a single
// compressed key. The input may contain duplicates; at least one key is
// required.
func AggregatePublicKeys(pubkeys []types.BLSPubkey) (types.BLSPubkey, error) {
	var out types.BLSPubkey
	if len(pubkeys) == 0 {
		return out, errors.New("nothing to aggregate")
	}
	agg := &herumi.PublicKey{}
	if err := agg.Deserialize(pubkeys[0][:]); err != nil {
		return out, fmt.Errorf("deserialize public key 0: %w", err)
	}
	for i := 1; i < len(pubkeys); i++ {
		p := &herumi.PublicKey{}
		if err := p.Deserialize(pubkeys[i][:]); err != nil {
			return out, fmt.Errorf("deserialize public key %d: %w", i, err)
		}
		agg.Add(p)
	}
	copy(out[:], agg.Serialize())
	return out, nil
}
