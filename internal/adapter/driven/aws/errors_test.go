package aws

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestHasErrorCode(t *testing.T) {
	wrapped := fmt.Errorf("operation error S3: %w", &smithy.GenericAPIError{Code: "NoSuchLifecycleConfiguration"})

	assert.True(t, hasErrorCode(wrapped, codeNoSuchLifecycleConfiguration))
	assert.True(t, hasErrorCode(wrapped, "Other", codeNoSuchLifecycleConfiguration))
	assert.False(t, hasErrorCode(wrapped, codeNoSuchPublicAccessBlockConfig))
	assert.False(t, hasErrorCode(errors.New("NoSuchLifecycleConfiguration"), codeNoSuchLifecycleConfiguration))
	assert.False(t, hasErrorCode(nil, codeNoSuchEntity))
}

func TestIsNoSuchEntity(t *testing.T) {
	assert.True(t, isNoSuchEntity(fmt.Errorf("wrap: %w", &iamtypes.NoSuchEntityException{Message: aws.String("x")})))
	assert.True(t, isNoSuchEntity(&smithy.GenericAPIError{Code: "NoSuchEntity"}))
	assert.False(t, isNoSuchEntity(&smithy.GenericAPIError{Code: "AccessDenied"}))
}
