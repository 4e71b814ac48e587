package aws

import (
	"errors"

	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/smithy-go"
)

const (
	codeNoSuchLifecycleConfiguration  = "NoSuchLifecycleConfiguration"
	codeNoSuchPublicAccessBlockConfig = "NoSuchPublicAccessBlockConfiguration"
	codeNoSuchEntity                  = "NoSuchEntity"
)

// hasErrorCode reports whether err carries one of the given API error codes.
func hasErrorCode(err error, codes ...string) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range codes {
		if apiErr.ErrorCode() == code {
			return true
		}
	}
	return false
}

func isNoSuchEntity(err error) bool {
	var nse *iamtypes.NoSuchEntityException
	if errors.As(err, &nse) {
		return true
	}
	return hasErrorCode(err, codeNoSuchEntity)
}
