package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

type DiscordWebhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type DiscordEmbed struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Color       int                   `json:"color"`
	Fields      []DiscordWebhookField `json:"fields"`
	Timestamp   string                `json:"timestamp"`
}

type DiscordWebhookRequest struct {
	Username string         `json:"username"`
	Embeds   []DiscordEmbed `json:"embeds"`
}

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Fields    []SlackField `json:"fields"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

const (
	ColorBlue = 3447003 // #3498DB - new submission

	Username = "Townhub Moderation"
)

// NotifySubmission pings the moderators' channel about a new pending
// submission. Best effort: failures are logged and never bubble up to the
// submitting request.
func NotifySubmission(contentType, title, authorName string) {
	if discordURL := os.Getenv("MODERATION_DISCORD_WEBHOOK"); discordURL != "" {
		if err := sendDiscordSubmission(discordURL, contentType, title, authorName); err != nil {
			log.Printf("Failed to send Discord moderation webhook: %v", err)
		}
	}

	if slackURL := os.Getenv("MODERATION_SLACK_WEBHOOK"); slackURL != "" {
		if err := sendSlackSubmission(slackURL, contentType, title, authorName); err != nil {
			log.Printf("Failed to send Slack moderation webhook: %v", err)
		}
	}
}

func sendDiscordSubmission(webhookURL, contentType, title, authorName string) error {
	payload := DiscordWebhookRequest{
		Username: Username,
		Embeds: []DiscordEmbed{
			{
				Title:       "New submission awaiting review",
				Description: fmt.Sprintf("A new %s was submitted to the directory.", contentType),
				Color:       ColorBlue,
				Fields: []DiscordWebhookField{
					{Name: "Type", Value: contentType, Inline: true},
					{Name: "Title", Value: title, Inline: true},
					{Name: "Submitted by", Value: authorName, Inline: true},
				},
				Timestamp: time.Now().Format(time.RFC3339),
			},
		},
	}

	return postJSON(webhookURL, payload)
}

func sendSlackSubmission(webhookURL, contentType, title, authorName string) error {
	payload := SlackWebhookRequest{
		Username: Username,
		Text:     "New submission awaiting review",
		Attachments: []SlackAttachment{
			{
				Color: "#3498DB",
				Title: title,
				Text:  fmt.Sprintf("New %s submitted by %s", contentType, authorName),
				Fields: []SlackField{
					{Title: "Type", Value: contentType, Short: true},
					{Title: "Submitted by", Value: authorName, Short: true},
				},
				Timestamp: time.Now().Unix(),
			},
		},
	}

	return postJSON(webhookURL, payload)
}

func postJSON(url string, payload interface{}) error {
	body, err := json.Marshal(payload)

	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}

	resp, err := client.Post(url, "application/json", bytes.NewReader(body))

	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %s", resp.Status)
	}

	return nil
}
