// Package checksum computes and places body integrity digests on outgoing
// requests. Algorithm selection and header placement follow the AWS
// request-checksum convention; hashing itself is done entirely with the
// standard library (hash/crc32, crypto/sha1, crypto/sha256, crypto/md5) —
// no third-party hashing library in the retrieved example pack offers a
// CRC32C (Castagnoli) implementation beyond what hash/crc32 already
// provides via crc32.MakeTable(crc32.Castagnoli), so reaching outside the
// standard library here would add a dependency without adding capability.
package checksum

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"hash"
	"hash/crc32"
)

// Algorithm identifies a supported checksum algorithm.
type Algorithm string

const (
	CRC32  Algorithm = "CRC32"
	CRC32C Algorithm = "CRC32C"
	SHA1   Algorithm = "SHA1"
	SHA256 Algorithm = "SHA256"
	MD5    Algorithm = "MD5"
)

// HeaderName returns the request header the algorithm's digest is written
// to. MD5 uses the conventional Content-MD5 header; the others use the
// x-amz-checksum-* family.
func (a Algorithm) HeaderName() string {
	switch a {
	case CRC32:
		return "x-amz-checksum-crc32"
	case CRC32C:
		return "x-amz-checksum-crc32c"
	case SHA1:
		return "x-amz-checksum-sha1"
	case SHA256:
		return "x-amz-checksum-sha256"
	case MD5:
		return "content-md5"
	default:
		return ""
	}
}

func (a Algorithm) newHash() (hash.Hash, error) {
	switch a {
	case CRC32:
		return crc32.NewIEEE(), nil
	case CRC32C:
		return crc32.New(crc32.MakeTable(crc32.Castagnoli)), nil
	case SHA1:
		return sha1.New(), nil
	case SHA256:
		return sha256.New(), nil
	case MD5:
		return md5.New(), nil
	default:
		return nil, fmt.Errorf("unsupported checksum algorithm %q", a)
	}
}

// isCRC reports whether the algorithm's digest must be rendered as four
// big-endian bytes before base64 encoding, rather than the hash's native
// variable-length digest.
func (a Algorithm) isCRC() bool {
	return a == CRC32 || a == CRC32C
}

// Compute returns the base64-encoded digest of body under algorithm a. CRC
// digests are rendered as four big-endian bytes before encoding; all other
// algorithms use the hash's native digest bytes.
func Compute(a Algorithm, body []byte) (string, error) {
	h, err := a.newHash()
	if err != nil {
		return "", err
	}
	if _, err := h.Write(body); err != nil {
		return "", err
	}

	if a.isCRC() {
		crcHash, ok := h.(hash.Hash32)
		if !ok {
			return "", fmt.Errorf("checksum: algorithm %q did not produce a 32-bit hash", a)
		}
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, crcHash.Sum32())
		return base64.StdEncoding.EncodeToString(b), nil
	}

	return base64.StdEncoding.EncodeToString(h.Sum(nil)), nil
}
