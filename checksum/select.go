package checksum

import "net/http"

// OperationOptions are the operation-level flags that influence checksum
// selection, mirroring the OperationDescriptor option flags.
type OperationOptions struct {
	// ChecksumRequired marks an operation that must always carry an
	// integrity digest; absent an explicit algorithm header this falls
	// back to MD5.
	ChecksumRequired bool

	// MD5ChecksumHeader marks an operation that supports, but does not
	// require, an MD5 digest, gated by the client's CalculateMD5 config.
	MD5ChecksumHeader bool
}

// ClientOptions are the service-config-level options that influence
// checksum selection.
type ClientOptions struct {
	// CalculateMD5 enables MD5 computation for operations that declare
	// MD5ChecksumHeader but do not require a checksum outright.
	CalculateMD5 bool
}

// requestAlgorithmHeader is the header a caller may set to explicitly pick
// an algorithm. Select checks it first, but only for operations that set
// ChecksumRequired or MD5ChecksumHeader.
const requestAlgorithmHeader = "x-amz-sdk-checksum-algorithm"

// Select resolves the algorithm to use for a request, or ok=false if no
// checksum should be computed. The order is:
//  1. an explicit x-amz-sdk-checksum-algorithm header, if the operation
//     supports caller-selected algorithms (ChecksumRequired or
//     MD5ChecksumHeader);
//  2. ChecksumRequired falls back to MD5;
//  3. MD5ChecksumHeader + ClientOptions.CalculateMD5 falls back to MD5;
//  4. otherwise no checksum.
func Select(header http.Header, op OperationOptions, client ClientOptions) (Algorithm, bool) {
	if op.ChecksumRequired || op.MD5ChecksumHeader {
		if v := header.Get(requestAlgorithmHeader); v != "" {
			return Algorithm(v), true
		}
	}

	if op.ChecksumRequired {
		return MD5, true
	}

	if op.MD5ChecksumHeader && client.CalculateMD5 {
		return MD5, true
	}

	return "", false
}

// Apply computes and sets the checksum header for body on req per the
// algorithm selected by Select, unless the target header already carries
// a value (idempotent — running Apply twice produces the same headers).
func Apply(header http.Header, body []byte, op OperationOptions, client ClientOptions) error {
	algo, ok := Select(header, op, client)
	if !ok {
		return nil
	}

	name := algo.HeaderName()
	if name == "" {
		return nil
	}
	if header.Get(name) != "" {
		return nil
	}

	digest, err := Compute(algo, body)
	if err != nil {
		return err
	}
	header.Set(name, digest)
	return nil
}
