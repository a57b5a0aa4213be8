package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aws/aws-request-core/awserr"
	"github.com/aws/aws-request-core/credentials"
	"github.com/aws/aws-request-core/metrics"
	"github.com/aws/aws-request-core/middleware"
	"github.com/aws/aws-request-core/middleware/id"
	"github.com/aws/aws-request-core/middleware/idempotency"
	"github.com/aws/aws-request-core/retry"
	"github.com/aws/aws-request-core/sigv4"
	smithyhttp "github.com/aws/aws-request-core/transport/http"
	"github.com/aws/aws-request-core/tracing"
)

// Executor implements component C6: the per-call sequence of credential
// resolution, request construction, signing, dispatch, decoding, and
// bounded retry that every operation against a ServiceConfig goes
// through. One Executor is built per service client and shared by every
// concurrent call against it.
type Executor struct {
	Config      ServiceConfig
	Credentials credentials.Provider
	Client      smithyhttp.ClientDo
	Signer      *sigv4.Signer
	Policy      retry.Policy
	Metrics     metrics.Recorder
	Tracer      tracing.Tracer

	builder RequestBuilder
	decoder ResponseDecoder

	requestCounter uint64
	shutdown       int32
}

// ExecutorOption configures an Executor at construction.
type ExecutorOption func(*Executor)

// WithClient overrides the HTTP client used to dispatch requests. Defaults
// to http.DefaultClient.
func WithClient(c smithyhttp.ClientDo) ExecutorOption {
	return func(e *Executor) { e.Client = c }
}

// WithSigner overrides the SigV4 signer. Defaults to sigv4.NewSigner().
func WithSigner(s *sigv4.Signer) ExecutorOption {
	return func(e *Executor) { e.Signer = s }
}

// WithPolicy overrides the retry policy. Defaults to a zero-value
// retry.Policy, which resolves to retry's own defaults.
func WithPolicy(p retry.Policy) ExecutorOption {
	return func(e *Executor) { e.Policy = p }
}

// WithMetrics overrides the metrics recorder. Defaults to a no-op.
func WithMetrics(r metrics.Recorder) ExecutorOption {
	return func(e *Executor) { e.Metrics = r }
}

// WithTracer overrides the tracer. Defaults to a no-op.
func WithTracer(t tracing.Tracer) ExecutorOption {
	return func(e *Executor) { e.Tracer = t }
}

// NewExecutor builds an Executor for one service, sharing cfg and provider
// across every call made through it.
func NewExecutor(cfg ServiceConfig, provider credentials.Provider, optFns ...ExecutorOption) *Executor {
	e := &Executor{
		Config:      cfg,
		Credentials: provider,
		Client:      http.DefaultClient,
		Signer:      sigv4.NewSigner(),
		Metrics:     metrics.NoopRecorder{},
		Tracer:      tracing.NoopTracer{},
	}
	for _, fn := range optFns {
		fn(e)
	}
	return e
}

// Shutdown marks the Executor unusable for further calls and releases the
// credential provider, if it holds resources. Idempotent: a second call
// returns nil without doing anything.
func (e *Executor) Shutdown(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&e.shutdown, 0, 1) {
		return nil
	}
	if s, ok := e.Credentials.(credentials.Shutdowner); ok {
		return s.Shutdown(ctx)
	}
	return nil
}

// Execute runs op against input, decoding the response into output, under
// the Executor's retry policy. output must be a pointer the operation's
// ResponseDecoder can populate.
func (e *Executor) Execute(ctx context.Context, op OperationDescriptor, input, output interface{}) error {
	if atomic.LoadInt32(&e.shutdown) != 0 {
		return &awserr.AlreadyShutdown{}
	}

	ctx = middleware.SetLogger(ctx, e.Config.Logger)
	logger := middleware.GetLogger(ctx)

	ctx, span := e.Tracer.StartSpan(ctx, e.Config.ServiceID+"."+op.Name, tracing.SpanKindClient)
	defer span.End()
	span.SetAttribute("aws.service", e.Config.ServiceID)
	span.SetAttribute("aws.operation", op.Name)

	baseAttrs := []metrics.Attribute{
		{Key: "service", Value: e.Config.ServiceID},
		{Key: "operation", Value: op.Name},
	}
	nonRestartable := hasStreamingPayload(op, input)

	var lastErr error
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return &awserr.Cancelled{Err: err}
		}

		reqID := atomic.AddUint64(&e.requestCounter, 1)
		attemptCtx, attemptSpan := e.Tracer.StartSpan(ctx, "Attempt", tracing.SpanKindClient)
		attemptSpan.SetAttribute("aws.request_id", reqID)

		e.Metrics.AddRequest(attemptCtx, baseAttrs...)
		start := time.Now()

		err := e.doAttempt(attemptCtx, op, input, output)

		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		e.Metrics.RecordDuration(attemptCtx, time.Since(start).Seconds(),
			append(append([]metrics.Attribute{}, baseAttrs...), metrics.Attribute{Key: "outcome", Value: outcome})...)

		if err != nil {
			attemptSpan.SetStatus(tracing.SpanStatusError)
		} else {
			attemptSpan.SetStatus(tracing.SpanStatusOK)
		}
		attemptSpan.End()

		if err == nil {
			return nil
		}
		lastErr = err

		if cancelErr := ctx.Err(); cancelErr != nil {
			return &awserr.Cancelled{Err: cancelErr}
		}

		if nonRestartable || !e.Policy.IsRetryable(err) || !e.Policy.ShouldAttempt(attempt+1) {
			return lastErr
		}

		delay := e.Policy.ComputeDelay(attempt, retryAfterDuration(err))
		logger.Logf(e.Config.ErrorLogLevel, "%s.%s: attempt %d failed, retrying in %s: %v",
			e.Config.ServiceID, op.Name, attempt, delay, err)

		if sleepErr := retry.SleepWithContext(ctx, delay); sleepErr != nil {
			return &awserr.Cancelled{Err: sleepErr}
		}
	}
}

// retryAfterDuration extracts the server-directed retry delay from a
// throttling error, if any.
func retryAfterDuration(err error) time.Duration {
	var t *awserr.Throttle
	if errors.As(err, &t) && t.RetryAfterSeconds > 0 {
		return time.Duration(t.RetryAfterSeconds) * time.Second
	}
	return 0
}

// doAttempt performs one credential-resolve/build/sign/dispatch/decode
// cycle through a freshly assembled middleware.Stack.
func (e *Executor) doAttempt(ctx context.Context, op OperationDescriptor, input, output interface{}) error {
	if e.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Config.Timeout)
		defer cancel()
	}

	cred, err := e.Credentials.Retrieve(ctx)
	if err != nil {
		return &awserr.CredentialUnavailable{Err: err}
	}

	stack := middleware.NewStack()

	if err := stack.Initialize.Add(idempotency.AutoFillMiddleware{}, middleware.Before); err != nil {
		return err
	}

	if err := stack.Serialize.Add(&operationSerializeMiddleware{
		builder: e.builder,
		op:      op,
		cfg:     e.Config,
	}, middleware.After); err != nil {
		return err
	}

	smithyhttp.AddContentLengthMiddleware(stack)

	if err := stack.Finalize.Add(&signingMiddleware{
		signer:         e.Signer,
		cred:           cred,
		service:        e.Config.SigningName,
		region:         e.Config.Region,
		op:             op,
		disableChunked: e.Config.Options.Has(OptS3DisableChunkedUploads),
	}, middleware.After); err != nil {
		return err
	}

	for _, sm := range e.Config.Middlewares {
		if sm.Install == nil {
			continue
		}
		if err := sm.Install(stack, sm.Position); err != nil {
			return err
		}
	}

	if err := smithyhttp.AddErrorCloseResponseBodyMiddleware(stack); err != nil {
		return err
	}
	if _, streaming := output.(RawPayloadSetter); !streaming {
		if err := smithyhttp.AddCloseResponseBodyMiddleware(stack); err != nil {
			return err
		}
	}

	if err := stack.Deserialize.Add(&operationDeserializeMiddleware{
		decoder: e.decoder,
		op:      op,
		cfg:     e.Config,
		output:  output,
	}, middleware.After); err != nil {
		return err
	}

	handler := smithyhttp.NewClientHandler(e.Client)
	_, _, err = stack.HandleMiddleware(ctx, input, handler)
	return err
}

// operationSerializeMiddleware is the terminal Serialize-step middleware:
// it is where component C3's (operation, input, config) -> *Request
// transformation actually happens, following the teacher's convention of
// naming this slot OperationSerializer.
type operationSerializeMiddleware struct {
	builder RequestBuilder
	op      OperationDescriptor
	cfg     ServiceConfig
}

func (m *operationSerializeMiddleware) ID() string { return id.OperationSerializer }

func (m *operationSerializeMiddleware) HandleSerialize(ctx context.Context, in middleware.SerializeInput, next middleware.SerializeHandler) (
	middleware.SerializeOutput, middleware.Metadata, error,
) {
	req, err := m.builder.Build(m.op, in.Parameters, m.cfg)
	if err != nil {
		return middleware.SerializeOutput{}, nil, err
	}
	in.Request = req
	return next.HandleSerialize(ctx, in)
}

// operationDeserializeMiddleware is the terminal Deserialize-step
// middleware: it calls down to the transport to get the raw response, then
// hands it to ResponseDecoder (component C5). Installed After (innermost)
// so the close-response-body middlewares, installed Before (outermost),
// see its RawResponse/error on their way back out.
type operationDeserializeMiddleware struct {
	decoder ResponseDecoder
	op      OperationDescriptor
	cfg     ServiceConfig
	output  interface{}
}

func (m *operationDeserializeMiddleware) ID() string { return id.OperationDeserializer }

func (m *operationDeserializeMiddleware) HandleDeserialize(ctx context.Context, in middleware.DeserializeInput, next middleware.DeserializeHandler) (
	middleware.DeserializeOutput, middleware.Metadata, error,
) {
	out, metadata, err := next.HandleDeserialize(ctx, in)
	if err != nil {
		return out, metadata, err
	}

	resp, ok := out.Result.(*smithyhttp.Response)
	if !ok {
		return middleware.DeserializeOutput{}, metadata, fmt.Errorf("unexpected response type %T", out.Result)
	}

	if decodeErr := m.decoder.Decode(resp, m.op, m.cfg, m.output); decodeErr != nil {
		return middleware.DeserializeOutput{RawResponse: resp}, metadata, decodeErr
	}
	return middleware.DeserializeOutput{RawResponse: resp, Result: m.output}, metadata, nil
}

// signingMiddleware is the Finalize-step middleware that computes and
// attaches the SigV4 signature, after every earlier step (including
// service- and client-declared middleware) has had a chance to mutate
// headers. An empty credential (credentials.Anonymous) disables signing
// entirely, for operations that must be sent unsigned.
type signingMiddleware struct {
	signer         *sigv4.Signer
	cred           credentials.Credential
	service        string
	region         string
	op             OperationDescriptor
	disableChunked bool
}

func (m *signingMiddleware) ID() string { return "Signing" }

func (m *signingMiddleware) HandleFinalize(ctx context.Context, in middleware.FinalizeInput, next middleware.FinalizeHandler) (
	middleware.FinalizeOutput, middleware.Metadata, error,
) {
	req, ok := in.Request.(*smithyhttp.Request)
	if !ok {
		return middleware.FinalizeOutput{}, nil, fmt.Errorf("unexpected finalize request type %T", in.Request)
	}

	if m.cred.IsEmpty() {
		in.Request = req
		return next.HandleFinalize(ctx, in)
	}

	now := time.Now()
	stream := req.GetStream()

	if adapter, ok := stream.(*chunkReaderAdapter); ok && m.op.Options.Has(OptAllowChunkedStreaming) && !m.disableChunked {
		signed, err := m.signChunked(req, adapter.Unwrap(), now)
		if err != nil {
			return middleware.FinalizeOutput{}, nil, err
		}
		in.Request = signed
		return next.HandleFinalize(ctx, in)
	}

	payloadHash := sigv4.EmptyPayloadHash
	if stream != nil {
		data, newReq, err := bufferAndRewind(req, stream)
		if err != nil {
			return middleware.FinalizeOutput{}, nil, &awserr.SigningFailure{Err: err}
		}
		req = newReq
		payloadHash = sigv4.HashPayload(data)
	}

	if err := m.signer.SignHTTP(m.cred, req.Request, payloadHash, m.service, m.region, now); err != nil {
		return middleware.FinalizeOutput{}, nil, &awserr.SigningFailure{Err: err}
	}

	in.Request = req
	return next.HandleFinalize(ctx, in)
}

// signChunked signs req's headers with the STREAMING placeholder and wraps
// its body in a chunkedStreamSigner seeded from the resulting signature,
// per SigV4's chunked upload scheme. cr must report a known size, which is
// sent as x-amz-decoded-content-length; a stream of unknown size fails with
// MissingContentLength.
func (m *signingMiddleware) signChunked(req *smithyhttp.Request, cr ChunkReader, now time.Time) (*smithyhttp.Request, error) {
	size, ok := cr.KnownSize()
	if !ok {
		return nil, &awserr.MissingContentLength{Operation: m.op.Name}
	}

	req.Header.Set("x-amz-content-sha256", sigv4.StreamingPayload)
	req.Header.Set("x-amz-decoded-content-length", strconv.FormatInt(size, 10))

	if err := m.signer.SignHTTP(m.cred, req.Request, sigv4.StreamingPayload, m.service, m.region, now); err != nil {
		return nil, &awserr.SigningFailure{Err: err}
	}

	seedSig := extractSignature(req.Header.Get("Authorization"))
	framed := newChunkedStreamSigner(cr, m.cred.SecretAccessKey, m.region, m.service, now, seedSig)
	return req.SetStream(framed)
}

// bufferAndRewind returns stream's full contents for hashing. A seekable
// stream (the common buffered-body case, a *bytes.Reader) is read and
// rewound in place, leaving req unchanged and the stream reusable for a
// retry. A non-seekable stream is read once and replaced on a clone of req
// with a *bytes.Reader over the same bytes, making it retry-safe too.
func bufferAndRewind(req *smithyhttp.Request, stream io.Reader) ([]byte, *smithyhttp.Request, error) {
	if seeker, ok := stream.(io.Seeker); ok {
		cur, err := seeker.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, nil, err
		}
		data, err := io.ReadAll(stream)
		if err != nil {
			return nil, nil, err
		}
		if _, err := seeker.Seek(cur, io.SeekStart); err != nil {
			return nil, nil, err
		}
		return data, req, nil
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, nil, err
	}
	newReq, err := req.SetStream(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	return data, newReq, nil
}

// extractSignature pulls the hex Signature value out of a computed
// Authorization header, to seed the chunk signer's hash chain. AWS's
// chunked upload scheme has no other way to obtain this value: SignHTTP
// only exposes it embedded in the header it writes.
func extractSignature(authHeader string) string {
	const marker = "Signature="
	idx := strings.LastIndex(authHeader, marker)
	if idx < 0 {
		return ""
	}
	return authHeader[idx+len(marker):]
}
