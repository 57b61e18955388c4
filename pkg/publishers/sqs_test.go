package publishers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/samvad-hq/samvad-content/pkg/strapi"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

func testEvent() Event {
	return NewEvent("http://cms.test", strapi.Article{
		ID:          1,
		Slug:        "hello",
		Title:       "Hello",
		PublishedAt: "2024-01-05T10:00:00.000Z",
		Status:      strapi.StatusPublished,
		Tags:        []strapi.Tag{},
	})
}

func TestSQSPublisherSendSuccess(t *testing.T) {
	client := &fakeSQSClient{}
	pub := &sqsPublisher{
		id:       "queue",
		queueURL: "https://example.com/queue",
		client:   client,
		log:      noopLogger{},
	}

	if err := pub.Publish(context.Background(), testEvent()); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://example.com/queue" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["slug"]
	if !ok || aws.ToString(attr.StringValue) != "hello" {
		t.Fatalf("slug attribute missing or wrong: %#v", attr)
	}
	if aws.ToString(attr.DataType) != "String" {
		t.Fatalf("DataType should be String, got %#v", attr.DataType)
	}
	body := aws.ToString(client.input.MessageBody)
	if !strings.Contains(body, `"slug":"hello"`) || !strings.Contains(body, `"source":"http://cms.test"`) {
		t.Fatalf("MessageBody missing event fields: %s", body)
	}
}

func TestSQSPublisherSkipsEmptyAttributes(t *testing.T) {
	client := &fakeSQSClient{}
	pub := &sqsPublisher{id: "queue", queueURL: "q", client: client, log: noopLogger{}}

	if err := pub.Publish(context.Background(), NewEvent("", strapi.Article{Slug: "draft"})); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if _, ok := client.input.MessageAttributes["published_at"]; ok {
		t.Fatalf("empty published_at must not be sent as an attribute")
	}
}

func TestSQSPublisherSendError(t *testing.T) {
	pub := &sqsPublisher{
		id:       "queue",
		queueURL: "https://example.com/queue",
		client:   &fakeSQSClient{err: errors.New("boom")},
		log:      noopLogger{},
	}

	if err := pub.Publish(context.Background(), testEvent()); err == nil {
		t.Fatalf("expected error from Publish")
	}
}

func TestNewSQSPublisherWithStaticCredentials(t *testing.T) {
	pub, err := newSQSPublisher(context.Background(), PublisherConfig{
		ID:   "local",
		Type: TypeSQS,
		SQS: &SQSPublisherConfig{
			QueueURL:    "http://localhost:4566/000000000000/articles",
			Region:      "us-east-1",
			Endpoint:    "http://localhost:4566",
			Credentials: &AWSCredentials{AccessKeyID: "test", SecretAccessKey: "test"},
		},
	}, nil)
	if err != nil {
		t.Fatalf("newSQSPublisher: %v", err)
	}
	if pub.ID() != "local" || pub.Type() != TypeSQS {
		t.Fatalf("unexpected publisher %s/%s", pub.Type(), pub.ID())
	}
}

func TestNewSQSPublisherRequiresConfig(t *testing.T) {
	if _, err := newSQSPublisher(context.Background(), PublisherConfig{ID: "q", Type: TypeSQS}, nil); err == nil {
		t.Fatalf("expected error for missing sqs block")
	}
}
