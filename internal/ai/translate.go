package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const translateInstruction = `You translate Korean legal terminology into English.
Each input item is a comma-separated list of Korean terms.
Translate every term, keep the ", " separators, and keep the item order.
Return only a JSON array of strings with exactly one output string per input item.
An empty input item yields an empty output string.`

// TranslateBatch 한국어 용어 목록 묶음을 영어로 번역한다.
func (c *Client) TranslateBatch(ctx context.Context, texts []string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if err := c.limiter.wait(ctx); err != nil {
		return nil, err
	}

	input, err := json.Marshal(texts)
	if err != nil {
		return nil, fmt.Errorf("encode batch: %w", err)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.translateModel,
		[]*genai.Content{genai.NewContentFromText(string(input), genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(translateInstruction, genai.RoleUser),
			Temperature:       genai.Ptr(float32(0)),
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("translate with %s: %w", c.translateModel, err)
	}

	return parseTranslations(resp.Text(), len(texts))
}

func parseTranslations(text string, want int) ([]string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var out []string
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("decode translations: %w", err)
	}
	if len(out) != want {
		return nil, fmt.Errorf("got %d translations for %d inputs", len(out), want)
	}
	for i := range out {
		out[i] = strings.TrimSpace(out[i])
	}
	return out, nil
}
