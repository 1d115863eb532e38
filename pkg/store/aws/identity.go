package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// CallerAccount resolves the account ID of the active credentials. Used when
// the run scope does not name an account explicitly.
func (c *Collector) CallerAccount(ctx context.Context) (string, error) {
	resp, err := c.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("failed to resolve caller identity: %w", err)
	}
	return aws.ToString(resp.Account), nil
}
