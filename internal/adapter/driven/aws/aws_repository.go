package aws

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/aws-audit-reports/internal/shared/types"
)

// DefaultRegion é usada quando nem a sessão nem o perfil definem uma região.
const DefaultRegion = "us-east-1"

// ClientFactory carrega a configuração AWS uma única vez e mantém um cache de clientes por região.
type ClientFactory struct {
	cfg         aws.Config
	session     types.SessionConfig
	clientCache map[string]interface{}
	mu          sync.Mutex
}

// NewClientFactory cria uma nova fábrica a partir de uma sessão explícita.
func NewClientFactory(ctx context.Context, session types.SessionConfig) (*ClientFactory, error) {
	var opts []func(*config.LoadOptions) error
	if session.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(session.Profile))
	}
	if session.Region != "" {
		opts = append(opts, config.WithRegion(session.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for profile %q: %w", session.Profile, err)
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	if session.Endpoint != "" {
		cfg.BaseEndpoint = aws.String(session.Endpoint)
	}

	return newClientFactory(cfg, session), nil
}

func newClientFactory(cfg aws.Config, session types.SessionConfig) *ClientFactory {
	return &ClientFactory{
		cfg:         cfg,
		session:     session,
		clientCache: make(map[string]interface{}),
	}
}

// Region returns the session's resolved default region.
func (f *ClientFactory) Region() string {
	return f.cfg.Region
}

// S3 returns an S3 client bound to region. An empty region means the default region.
func (f *ClientFactory) S3(region string) S3API {
	return f.getServiceClient(region, "s3").(*s3.Client)
}

// CloudWatch returns a CloudWatch client bound to region.
func (f *ClientFactory) CloudWatch(region string) CloudWatchAPI {
	return f.getServiceClient(region, "cloudwatch").(*cloudwatch.Client)
}

// IAM returns the IAM client. IAM is global, so the default region is used.
func (f *ClientFactory) IAM() IAMAPI {
	return f.getServiceClient("", "iam").(*iam.Client)
}

// STS returns the STS client.
func (f *ClientFactory) STS() STSAPI {
	return f.getServiceClient("", "sts").(*sts.Client)
}

func (f *ClientFactory) getServiceClient(region, service string) interface{} {
	if region == "" {
		region = f.cfg.Region
	}
	cacheKey := fmt.Sprintf("%s-%s", region, service)

	f.mu.Lock()
	defer f.mu.Unlock()

	if client, ok := f.clientCache[cacheKey]; ok {
		return client
	}

	regionalCfg := f.cfg.Copy()
	regionalCfg.Region = region

	var client interface{}
	switch service {
	case "s3":
		client = s3.NewFromConfig(regionalCfg, func(o *s3.Options) {
			// Emuladores locais não resolvem endereços virtual-hosted.
			o.UsePathStyle = f.session.Endpoint != ""
		})
	case "cloudwatch":
		client = cloudwatch.NewFromConfig(regionalCfg)
	case "iam":
		client = iam.NewFromConfig(regionalCfg)
	case "sts":
		client = sts.NewFromConfig(regionalCfg)
	default:
		panic(fmt.Sprintf("unsupported service: %s", service))
	}

	f.clientCache[cacheKey] = client
	return client
}
