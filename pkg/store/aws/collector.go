package aws

import (
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/computeoptimizer"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Collector normalizes AWS API responses into the engine's domain records.
// One instance serves every region; calls override the client region per
// request.
type Collector struct {
	ec2       *ec2.Client
	rds       *rds.Client
	cw        *cloudwatch.Client
	optimizer optimizerAPI
	sts       *sts.Client
}

func NewCollector(cfg awssdk.Config) *Collector {
	return &Collector{
		ec2:       ec2.NewFromConfig(cfg),
		rds:       rds.NewFromConfig(cfg),
		cw:        cloudwatch.NewFromConfig(cfg),
		optimizer: computeoptimizer.NewFromConfig(cfg),
		sts:       sts.NewFromConfig(cfg),
	}
}
