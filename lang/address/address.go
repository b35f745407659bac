// Copyright 2024 The CircLang Authors
// This file is part of CircLang.
//
// CircLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package address implements the CIRC account address format: a 32-byte
// payload encoded as bech32 (BIP-173) under the fixed human-readable prefix
// "circ". The parser verifies every address literal with this package, so a
// source file with a mistyped address fails at parse time rather than at
// proof generation.
package address

import (
	"errors"
	"fmt"
	"strings"
)

// HRP is the human-readable prefix of every CIRC address.
const HRP = "circ"

// PayloadLen is the decoded payload size in bytes.
const PayloadLen = 32

// Len is the total literal length: HRP + "1" + 52 data chars + 6 checksum chars.
const Len = len(HRP) + 1 + 52 + 6

const charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

var gen = [5]uint32{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}

var (
	// ErrLength is returned when the literal does not have the exact
	// address length.
	ErrLength = errors.New("address: wrong length")
	// ErrChecksum is returned when the bech32 checksum does not verify.
	ErrChecksum = errors.New("address: checksum mismatch")
)

func polymod(values []byte) uint32 {
	chk := uint32(1)
	for _, v := range values {
		b := chk >> 25
		chk = (chk&0x1ffffff)<<5 ^ uint32(v)
		for i := 0; i < 5; i++ {
			if (b>>uint(i))&1 == 1 {
				chk ^= gen[i]
			}
		}
	}
	return chk
}

func hrpExpand(hrp string) []byte {
	ret := make([]byte, 0, len(hrp)*2+1)
	for _, c := range hrp {
		ret = append(ret, byte(c>>5))
	}
	ret = append(ret, 0)
	for _, c := range hrp {
		ret = append(ret, byte(c&31))
	}
	return ret
}

func verifyChecksum(hrp string, data []byte) bool {
	return polymod(append(hrpExpand(hrp), data...)) == 1
}

func createChecksum(hrp string, data []byte) []byte {
	values := append(hrpExpand(hrp), data...)
	values = append(values, 0, 0, 0, 0, 0, 0)
	mod := polymod(values) ^ 1
	ret := make([]byte, 6)
	for i := 0; i < 6; i++ {
		ret[i] = byte(mod >> uint(5*(5-i)) & 31)
	}
	return ret
}

// convertBits regroups the bits of data from fromBits-sized groups into
// toBits-sized groups. With pad set, a final partial group is zero-padded;
// without it, a non-zero partial group is an error.
func convertBits(data []byte, fromBits, toBits uint, pad bool) ([]byte, error) {
	acc := uint32(0)
	bits := uint(0)
	maxv := uint32(1)<<toBits - 1
	var ret []byte
	for _, v := range data {
		if uint32(v)>>fromBits != 0 {
			return nil, fmt.Errorf("address: invalid data value %d", v)
		}
		acc = acc<<fromBits | uint32(v)
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			ret = append(ret, byte(acc>>bits&maxv))
		}
	}
	if pad {
		if bits > 0 {
			ret = append(ret, byte(acc<<(toBits-bits)&maxv))
		}
	} else if bits >= fromBits || acc<<(toBits-bits)&maxv != 0 {
		return nil, errors.New("address: invalid padding")
	}
	return ret, nil
}

// Encode renders a 32-byte payload as a CIRC address literal.
func Encode(payload []byte) (string, error) {
	if len(payload) != PayloadLen {
		return "", fmt.Errorf("address: payload must be %d bytes, got %d", PayloadLen, len(payload))
	}
	data5, err := convertBits(payload, 8, 5, true)
	if err != nil {
		return "", err
	}
	data5 = append(data5, createChecksum(HRP, data5)...)
	var sb strings.Builder
	sb.WriteString(HRP)
	sb.WriteByte('1')
	for _, v := range data5 {
		sb.WriteByte(charset[v])
	}
	return sb.String(), nil
}

// Decode parses a CIRC address literal and returns its 32-byte payload.
func Decode(addr string) ([]byte, error) {
	if len(addr) != Len {
		return nil, ErrLength
	}
	if !strings.HasPrefix(addr, HRP+"1") {
		return nil, fmt.Errorf("address: missing %q prefix", HRP+"1")
	}
	body := addr[len(HRP)+1:]
	data5 := make([]byte, len(body))
	for i := 0; i < len(body); i++ {
		v := strings.IndexByte(charset, body[i])
		if v < 0 {
			return nil, fmt.Errorf("address: invalid character %q", body[i])
		}
		data5[i] = byte(v)
	}
	if !verifyChecksum(HRP, data5) {
		return nil, ErrChecksum
	}
	payload, err := convertBits(data5[:len(data5)-6], 5, 8, false)
	if err != nil {
		return nil, err
	}
	if len(payload) != PayloadLen {
		return nil, ErrLength
	}
	return payload, nil
}

// Verify reports whether addr is a well-formed CIRC address with a valid
// checksum.
func Verify(addr string) error {
	_, err := Decode(addr)
	return err
}
