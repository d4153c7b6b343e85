package mail

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"

	appconfig "github.com/coproptech/maintenance-service/internal/config"
)

// SESTransport sends mail through AWS SES using the SDK v2.
type SESTransport struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
}

// NewSESTransport builds the transport. When credentials are missing the
// client stays nil and every Send fails; the use cases swallow those failures
// so a dev environment without SES still works.
func NewSESTransport(ctx context.Context, cfg appconfig.MailConfig, logger *zap.Logger) *SESTransport {
	transport := &SESTransport{
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}

	if cfg.AWSAccessKey == "" || cfg.AWSSecretKey == "" {
		logger.Warn("SES credentials not provided; outbound mail disabled")
		return transport
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AWSAccessKey, cfg.AWSSecretKey, "")),
	)
	if err != nil {
		logger.Warn("failed to initialize AWS config; outbound mail disabled", zap.Error(err))
		return transport
	}

	transport.client = sesv2.NewFromConfig(awsCfg)
	logger.Info("SES transport ready", zap.String("region", cfg.AWSRegion))
	return transport
}

// Send delivers a message through SES.
func (t *SESTransport) Send(ctx context.Context, msg Message) error {
	if t.client == nil {
		return fmt.Errorf("ses client not initialized")
	}
	if len(msg.Recipients) == 0 {
		return fmt.Errorf("no recipients")
	}

	addresses := make([]string, 0, len(msg.Recipients))
	for _, recipient := range msg.Recipients {
		addresses = append(addresses, recipient.Email)
	}

	body := &types.Body{
		Html: &types.Content{Data: aws.String(msg.HTMLBody), Charset: aws.String("UTF-8")},
	}
	if msg.TextBody != "" {
		body.Text = &types.Content{Data: aws.String(msg.TextBody), Charset: aws.String("UTF-8")}
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", t.fromName, t.fromEmail)),
		Destination:      &types.Destination{ToAddresses: addresses},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body:    body,
			},
		},
	}

	_, err := t.client.SendEmail(ctx, input)
	return err
}

// SendSafe delivers a message, mapping any failure to false.
func (t *SESTransport) SendSafe(ctx context.Context, msg Message) bool {
	return t.Send(ctx, msg) == nil
}
