package embedding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// OpenAIProvider implements EmbeddingProvider for the OpenAI embeddings API.
// text-embedding-3-small returns 1536 dimensions, matching the default
// vector columns.
type OpenAIProvider struct {
	ApiKey string
	Model  string
}

func NewOpenAIProvider(apiKey string, model string) EmbeddingProvider {
	if model == "" {
		model = "text-embedding-3-small"
	}
	return &OpenAIProvider{
		ApiKey: apiKey,
		Model:  model,
	}
}

type openAIEmbeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type openAIEmbeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *OpenAIProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	// OpenAI has no task type distinction; the parameter is kept for
	// interface compatibility.
	reqBody := openAIEmbeddingRequest{
		Model: p.Model,
		Input: []string{text},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", "https://api.openai.com/v1/embeddings", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.ApiKey))

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai embedding error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var openAIResp openAIEmbeddingResponse
	if err := json.Unmarshal(bodyBytes, &openAIResp); err != nil {
		return nil, err
	}
	if openAIResp.Error != nil {
		return nil, fmt.Errorf("openai api returned error: %s", openAIResp.Error.Message)
	}
	if len(openAIResp.Data) == 0 {
		return nil, fmt.Errorf("empty embeddings from openai api")
	}

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{
			Values: normalizeVector(openAIResp.Data[0].Embedding),
		},
	}, nil
}
