package checksum

import (
	"net/http"
	"testing"
)

func TestComputeCRC32(t *testing.T) {
	digest, err := Compute(CRC32, []byte("hello world"))
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	// crc32.ChecksumIEEE("hello world") = 0x0d4a1185
	if digest != "DUoRhQ==" {
		t.Fatalf("unexpected crc32 digest: %s", digest)
	}
}

func TestComputeMD5(t *testing.T) {
	digest, err := Compute(MD5, []byte(""))
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if digest != "1B2M2Y8AsgTpgAmY7PhCfg==" {
		t.Fatalf("unexpected md5 digest for empty body: %s", digest)
	}
}

func TestSelect(t *testing.T) {
	cases := []struct {
		name      string
		header    http.Header
		op        OperationOptions
		client    ClientOptions
		wantAlgo  Algorithm
		wantOk    bool
	}{
		{
			name:     "explicit header wins",
			header:   http.Header{requestAlgorithmHeaderCanonical: []string{"SHA256"}},
			op:       OperationOptions{ChecksumRequired: true},
			wantAlgo: SHA256,
			wantOk:   true,
		},
		{
			name:     "checksum required falls back to md5",
			header:   http.Header{},
			op:       OperationOptions{ChecksumRequired: true},
			wantAlgo: MD5,
			wantOk:   true,
		},
		{
			name:     "md5 header gated by client option",
			header:   http.Header{},
			op:       OperationOptions{MD5ChecksumHeader: true},
			client:   ClientOptions{CalculateMD5: true},
			wantAlgo: MD5,
			wantOk:   true,
		},
		{
			name:   "md5 header without client option is skipped",
			header: http.Header{},
			op:     OperationOptions{MD5ChecksumHeader: true},
			wantOk: false,
		},
		{
			name:   "no flags means no checksum",
			header: http.Header{},
			wantOk: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			algo, ok := Select(tc.header, tc.op, tc.client)
			if ok != tc.wantOk {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOk)
			}
			if ok && algo != tc.wantAlgo {
				t.Fatalf("algo = %v, want %v", algo, tc.wantAlgo)
			}
		})
	}
}

// requestAlgorithmHeaderCanonical is the canonical http.Header key form of
// requestAlgorithmHeader, since http.Header keys constructed literally in
// tests must match net/http's canonicalization.
const requestAlgorithmHeaderCanonical = "X-Amz-Sdk-Checksum-Algorithm"

func TestApplyIsIdempotent(t *testing.T) {
	header := http.Header{}
	op := OperationOptions{ChecksumRequired: true}

	if err := Apply(header, []byte("payload"), op, ClientOptions{}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	first := header.Get("content-md5")

	if err := Apply(header, []byte("payload"), op, ClientOptions{}); err != nil {
		t.Fatalf("Apply (second run): %v", err)
	}
	second := header.Get("content-md5")

	if first != second {
		t.Fatalf("checksum header changed on second Apply: %s != %s", first, second)
	}
}

func TestApplySkipsExistingHeader(t *testing.T) {
	header := http.Header{}
	header.Set("content-md5", "already-set")

	op := OperationOptions{ChecksumRequired: true}
	if err := Apply(header, []byte("payload"), op, ClientOptions{}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if got := header.Get("content-md5"); got != "already-set" {
		t.Fatalf("Apply overwrote existing header: %s", got)
	}
}
