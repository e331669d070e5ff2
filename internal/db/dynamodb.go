package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/spacesedan/insightflow/internal/clients"
	"github.com/spacesedan/insightflow/internal/models"
	"github.com/spacesedan/insightflow/internal/utils"
)

const ANNOTATED_CONTENT_TABLE_NAME = "AnnotatedContent"

// Retention window for stored posts
const annotatedContentTTL = 30 * 24 * time.Hour

var dbClient *dynamodb.Client

func InitDynamoDB() {
	dbClient = clients.GetDynamoDBClient()
}

// BatchInsertAnnotatedPosts writes posts in chunks of 25, the BatchWriteItem
// ceiling. Unprocessed items are retried with a doubling backoff before the
// chunk is given up on.
func BatchInsertAnnotatedPosts(ctx context.Context, posts []models.AnnotatedPost) error {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	for start := 0; start < len(posts); start += utils.DYNAMODB_BATCH_SIZE {
		select {
		case <-ctx.Done():
			slog.Warn("[DynamoDB] context canceled")
			return ctx.Err()
		default:
		}

		end := start + utils.DYNAMODB_BATCH_SIZE
		if end > len(posts) {
			end = len(posts)
		}

		writeRequests := make([]types.WriteRequest, 0, end-start)
		for _, post := range posts[start:end] {
			writeRequests = append(writeRequests, types.WriteRequest{
				PutRequest: &types.PutRequest{
					Item: PostToDynamoDBItem(post),
				},
			})
		}

		out, err := dbClient.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				ANNOTATED_CONTENT_TABLE_NAME: writeRequests,
			},
		})
		if err != nil {
			return fmt.Errorf("[DynamoDB] Failed to batch write annotated posts: %w", err)
		}

		retryCount := 0
		backoff := 500 * time.Millisecond
		for len(out.UnprocessedItems) > 0 && retryCount < 3 {
			time.Sleep(backoff)
			backoff *= 2

			slog.Warn("[DynamoDB] Retrying unprocessed annotated posts...",
				slog.Int("attempt", retryCount+1),
				slog.Int("remaining", len(out.UnprocessedItems[ANNOTATED_CONTENT_TABLE_NAME])))

			out, err = dbClient.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: out.UnprocessedItems,
			})
			if err != nil {
				return fmt.Errorf("[DynamoDB] Failed to retry batch write: %w", err)
			}

			retryCount++
		}

		if len(out.UnprocessedItems) > 0 {
			slog.Error("[DynamoDB] Some annotated posts failed after retries",
				slog.Int("remaining", len(out.UnprocessedItems[ANNOTATED_CONTENT_TABLE_NAME])))
		}
	}

	slog.Info("[DynamoDB] Successfully stored annotated posts",
		slog.Int("count", len(posts)))
	return nil
}

// PostToDynamoDBItem flattens an annotated post into an item map. Label
// fields that were never filled stay off the item entirely.
func PostToDynamoDBItem(post models.AnnotatedPost) map[string]types.AttributeValue {
	item := make(map[string]types.AttributeValue)

	item["content_id"] = &types.AttributeValueMemberS{Value: post.ContentID}
	item["source"] = &types.AttributeValueMemberS{Value: post.Source}
	item["text"] = &types.AttributeValueMemberS{Value: post.Text}
	item["ttl"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", time.Now().Add(annotatedContentTTL).Unix())}

	ingestedAt := post.IngestedAt
	if ingestedAt.IsZero() {
		ingestedAt = time.Now()
	}
	item["ingested_at"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", ingestedAt.Unix())}

	if post.Query != "" {
		item["query"] = &types.AttributeValueMemberS{Value: post.Query}
	}

	metadata := make(map[string]types.AttributeValue)
	if post.Metadata.Author != "" {
		metadata["author"] = &types.AttributeValueMemberS{Value: post.Metadata.Author}
	}
	if post.Metadata.PostID != "" {
		metadata["post_id"] = &types.AttributeValueMemberS{Value: post.Metadata.PostID}
	}
	if post.Metadata.URL != "" {
		metadata["url"] = &types.AttributeValueMemberS{Value: post.Metadata.URL}
	}
	if !post.Metadata.Timestamp.IsZero() {
		metadata["timestamp"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", post.Metadata.Timestamp.Unix())}
	}
	if len(metadata) > 0 {
		item["metadata"] = &types.AttributeValueMemberM{Value: metadata}
	}

	item["engagement"] = &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
		"likes":    &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", post.Engagement.Likes)},
		"comments": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", post.Engagement.Comments)},
		"shares":   &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", post.Engagement.Shares)},
		"views":    &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", post.Engagement.Views)},
	}}

	labels := map[string]string{
		"sentiment":            post.Sentiment,
		"topic":                post.Topic,
		"interest":             post.Interest,
		"communication_style":  post.CommunicationStyle,
		"value":                post.Value,
		"emotion":              post.Emotion,
		"language":             post.Language,
		"author_age_group":     post.AuthorAgeGroup,
		"author_gender":        post.AuthorGender,
		"author_location_hint": post.AuthorLocationHint,
	}
	for key, value := range labels {
		if value != "" {
			item[key] = &types.AttributeValueMemberS{Value: value}
		}
	}

	return item
}

// annotatedItem mirrors the attribute names PostToDynamoDBItem writes.
type annotatedItem struct {
	ContentID          string              `dynamodbav:"content_id"`
	Source             string              `dynamodbav:"source"`
	Query              string              `dynamodbav:"query"`
	Text               string              `dynamodbav:"text"`
	Metadata           annotatedItemMeta   `dynamodbav:"metadata"`
	Engagement         annotatedItemCounts `dynamodbav:"engagement"`
	IngestedAt         int64               `dynamodbav:"ingested_at"`
	Sentiment          string              `dynamodbav:"sentiment"`
	Topic              string              `dynamodbav:"topic"`
	Interest           string              `dynamodbav:"interest"`
	CommunicationStyle string              `dynamodbav:"communication_style"`
	Value              string              `dynamodbav:"value"`
	Emotion            string              `dynamodbav:"emotion"`
	Language           string              `dynamodbav:"language"`
	AuthorAgeGroup     string              `dynamodbav:"author_age_group"`
	AuthorGender       string              `dynamodbav:"author_gender"`
	AuthorLocationHint string              `dynamodbav:"author_location_hint"`
}

type annotatedItemMeta struct {
	Author    string `dynamodbav:"author"`
	PostID    string `dynamodbav:"post_id"`
	URL       string `dynamodbav:"url"`
	Timestamp int64  `dynamodbav:"timestamp"`
}

type annotatedItemCounts struct {
	Likes    int `dynamodbav:"likes"`
	Comments int `dynamodbav:"comments"`
	Shares   int `dynamodbav:"shares"`
	Views    int `dynamodbav:"views"`
}

func (i annotatedItem) toPost() models.AnnotatedPost {
	post := models.AnnotatedPost{
		AnnotationInput: models.AnnotationInput{
			SocialPost: models.SocialPost{
				ContentID: i.ContentID,
				Source:    i.Source,
				Query:     i.Query,
				Text:      i.Text,
				Metadata: models.ContentMetadata{
					Author: i.Metadata.Author,
					PostID: i.Metadata.PostID,
					URL:    i.Metadata.URL,
				},
				Engagement: models.EngagementStats{
					Likes:    i.Engagement.Likes,
					Comments: i.Engagement.Comments,
					Shares:   i.Engagement.Shares,
					Views:    i.Engagement.Views,
				},
			},
		},
		Sentiment:          i.Sentiment,
		Topic:              i.Topic,
		Interest:           i.Interest,
		CommunicationStyle: i.CommunicationStyle,
		Value:              i.Value,
		Emotion:            i.Emotion,
		Language:           i.Language,
		AuthorAgeGroup:     i.AuthorAgeGroup,
		AuthorGender:       i.AuthorGender,
		AuthorLocationHint: i.AuthorLocationHint,
	}

	if i.Metadata.Timestamp != 0 {
		post.Metadata.Timestamp = time.Unix(i.Metadata.Timestamp, 0).UTC()
	}
	if i.IngestedAt != 0 {
		post.IngestedAt = time.Unix(i.IngestedAt, 0).UTC()
	}

	return post
}

// GetAnnotatedPosts scans the full table for the insights job.
func GetAnnotatedPosts(ctx context.Context) ([]models.AnnotatedPost, error) {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	var posts []models.AnnotatedPost
	input := &dynamodb.ScanInput{
		TableName: aws.String(ANNOTATED_CONTENT_TABLE_NAME),
	}

	paginator := dynamodb.NewScanPaginator(dbClient, input)

	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("[DynamoDB] Scan for annotated posts failed: %w", err)
		}

		var page []annotatedItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			slog.Error("[DynamoDB] Unable to unmarshal annotated post page",
				slog.String("error", err.Error()))
			return nil, err
		}
		for _, item := range page {
			posts = append(posts, item.toPost())
		}
	}

	slog.Info("[DynamoDB] Successfully retrieved annotated posts",
		slog.Int("count", len(posts)))
	return posts, nil
}
