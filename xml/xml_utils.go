package xml

import (
	"encoding/xml"
	"fmt"
	"io"
)

// GetResponseErrorCode returns the error code from an xml error response body
func GetResponseErrorCode(r io.Reader, noErrorWrapping bool) (string, error) {
	code, _, _, err := GetResponseError(r, noErrorWrapping)
	return code, err
}

// GetResponseError returns the error code, message, and request id from an
// xml error response body. The request id comes from the envelope's
// RequestId element when noErrorWrapping is false (the query/ec2-query
// ErrorResponse envelope); rest-xml services carry it only in the
// x-amz-request-id header, which the caller reads separately.
func GetResponseError(r io.Reader, noErrorWrapping bool) (code, message, requestID string, err error) {
	rb, err := io.ReadAll(r)
	if err != nil {
		return "", "", "", err
	}

	if noErrorWrapping {
		var errResponse errorBody
		if err := xml.Unmarshal(rb, &errResponse); err != nil {
			return "", "", "", fmt.Errorf("error while fetching xml error response code: %w", err)
		}
		return errResponse.Code, errResponse.Message, "", nil
	}

	var errResponse errorResponse
	if err := xml.Unmarshal(rb, &errResponse); err != nil {
		return "", "", "", fmt.Errorf("error while fetching xml error response code: %w", err)
	}
	return errResponse.Err.Code, errResponse.Err.Message, errResponse.RequestID, nil
}

// errorResponse represents the outer error response body
// i.e. <ErrorResponse>...</ErrorResponse>
type errorResponse struct {
	Err       errorBody `xml:"Error"`
	RequestID string    `xml:"RequestId"`
}

// errorBody represents the inner error body is wrapped by <ErrorResponse> tag
// eg. if error response is <ErrorResponse><Error>...</Error><ErrorResponse>
// here errorBody represents <Error>...</Error>
type errorBody struct {
	Code    string `xml:"Code"`
	Message string `xml:"Message"`
}
