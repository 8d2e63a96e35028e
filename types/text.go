package types

import "fmt"

// Text marshaling for the fixed-size byte types, used by the JSON layers
// of the API and engine surfaces. Everything renders as 0x-prefixed hex.

func (r Root) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Root) UnmarshalText(b []byte) error {
	parsed, err := RootFromHex(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (v Version) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("0x%x", v[:])), nil
}

func (v *Version) UnmarshalText(b []byte) error {
	out, err := bytesFromHex(string(b), len(v))
	if err != nil {
		return err
	}
	copy(v[:], out)
	return nil
}

func (p BLSPubkey) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("0x%x", p[:])), nil
}

func (p *BLSPubkey) UnmarshalText(b []byte) error {
	out, err := bytesFromHex(string(b), len(p))
	if err != nil {
		return err
	}
	copy(p[:], out)
	return nil
}

func (s BLSSignature) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("0x%x", s[:])), nil
}

func (s *BLSSignature) UnmarshalText(b []byte) error {
	out, err := bytesFromHex(string(b), len(s))
	if err != nil {
		return err
	}
	copy(s[:], out)
	return nil
}

func (a ExecutionAddress) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("0x%x", a[:])), nil
}

func (a *ExecutionAddress) UnmarshalText(b []byte) error {
	out, err := bytesFromHex(string(b), len(a))
	if err != nil {
		return err
	}
	copy(a[:], out)
	return nil
}
