// internal/notify/service.go
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"krixo-panel/internal/common/aws"
	"krixo-panel/internal/common/config"
	apperrors "krixo-panel/internal/common/errors"
	"krixo-panel/internal/common/logger"
	"krixo-panel/internal/common/metrics"
	"krixo-panel/internal/models"
	"krixo-panel/internal/normalizer"

	sdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/google/uuid"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Notifier tells a requester about the admin's decision on their command.
type Notifier interface {
	NotifyCommandDecision(ctx context.Context, cmd models.Command, approved bool) (*Result, error)
}

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	FromEmail    string
	SenderID     string
}

type Service struct {
	config    Config
	sesClient SESService
	snsClient SNSService
	logger    logger.Logger
	now       func() time.Time
}

func NewService(cfg Config, sesClient SESService, snsClient SNSService, log logger.Logger) *Service {
	return &Service{
		config:    cfg,
		sesClient: sesClient,
		snsClient: snsClient,
		logger:    log.WithFields(map[string]interface{}{"component": "notify"}),
		now:       time.Now,
	}
}

// FromConfig builds the notifier from application config. AWS is only
// contacted when at least one channel is enabled.
func FromConfig(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) (*Service, error) {
	c := Config{
		EmailEnabled: cfg.Email.Enabled,
		SMSEnabled:   cfg.SMS.Enabled,
		FromEmail:    cfg.Email.FromEmail,
		SenderID:     cfg.SMS.SenderID,
	}
	if !c.EmailEnabled && !c.SMSEnabled {
		return NewService(c, nil, nil, log), nil
	}

	awsCfg, err := aws.LoadConfig(ctx, cfg.AWS.Region)
	if err != nil {
		return nil, err
	}
	return NewService(c, aws.NewSESClient(awsCfg), aws.NewSNSClient(awsCfg), log), nil
}

func (s *Service) NotifyCommandDecision(ctx context.Context, cmd models.Command, approved bool) (*Result, error) {
	notificationType := TypeCommandRejected
	if approved {
		notificationType = TypeCommandApproved
	}
	tmpl := templates[notificationType]

	data := map[string]interface{}{
		"id":       cmd.ID,
		"name":     cmd.Name,
		"services": strings.Join(cmd.Services, "، "),
		"start":    cmd.Start,
		"end":      cmd.End,
	}
	subject := renderTemplate(tmpl["subject"], data)
	body := renderTemplate(tmpl["body"], data)

	result := &Result{
		NotificationID: uuid.New().String(),
		Status:         StatusDisabled,
		SentAt:         s.now().UTC().Format(time.RFC3339),
	}

	// every enabled channel is attempted; one outage does not suppress the other
	var failed []string
	var errs []error
	deliver := func(channel string, send func() error) {
		if err := send(); err != nil {
			metrics.Notifications.WithLabelValues(channel, StatusFailed).Inc()
			failed = append(failed, channel)
			errs = append(errs, fmt.Errorf("%s: %w", channel, err))
			return
		}
		metrics.Notifications.WithLabelValues(channel, StatusSent).Inc()
		result.Channels = append(result.Channels, channel)
	}

	if s.config.EmailEnabled && s.sesClient != nil && cmd.Email != "" {
		deliver(ChannelEmail, func() error { return s.sendEmail(ctx, cmd.Email, subject, body) })
	}
	if s.config.SMSEnabled && s.snsClient != nil && hasPhone(cmd.Phone) {
		deliver(ChannelSMS, func() error { return s.sendSMS(ctx, cmd.Phone, body) })
	}

	if len(errs) > 0 {
		result.Status = StatusFailed
		return result, apperrors.NewNotificationFailedError(strings.Join(failed, ","), errors.Join(errs...)).
			WithMetadata("commandId", cmd.ID)
	}
	if len(result.Channels) > 0 {
		result.Status = StatusSent
	}

	s.logger.Info("decision notification processed", map[string]interface{}{
		"commandId": cmd.ID,
		"type":      notificationType,
		"status":    result.Status,
	})
	return result, nil
}

func hasPhone(phone string) bool {
	return phone != "" && phone != normalizer.Placeholder
}

func (s *Service) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := s.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: sdk.String(subject), Charset: sdk.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: sdk.String(body), Charset: sdk.String("UTF-8")},
			},
		},
		Source: sdk.String(s.config.FromEmail),
	})
	return err
}

func (s *Service) sendSMS(ctx context.Context, to, message string) error {
	input := &sns.PublishInput{
		PhoneNumber: sdk.String(to),
		Message:     sdk.String(message),
	}
	if s.config.SenderID != "" {
		input.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {DataType: sdk.String("String"), StringValue: sdk.String(s.config.SenderID)},
		}
	}
	_, err := s.snsClient.Publish(ctx, input)
	return err
}

// renderTemplate fills {{key}} placeholders and drops any left unfilled.
func renderTemplate(tmpl string, data map[string]interface{}) string {
	result := tmpl
	for k, v := range data {
		value := ""
		if v != nil {
			value = fmt.Sprintf("%v", v)
		}
		result = strings.ReplaceAll(result, "{{"+k+"}}", value)
	}

	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		end += start + 2
		result = result[:start] + result[end:]
	}
	return result
}
