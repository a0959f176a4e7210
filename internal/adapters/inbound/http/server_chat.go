package http

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type chatRequest struct {
	Query string `json:"query"`
}

type chatResponse struct {
	Response    string `json:"response"`
	Steps       int    `json:"steps"`
	TotalTokens int    `json:"total_tokens"`
}

func (api AssistantAPIServer) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errorResp{
			Error: errorBody{
				Code:    ErrorCode_BadRequest,
				Message: fmt.Sprintf("invalid request body: %v", err),
			},
		})
		return
	}

	answer, err := api.AnswerQueryUseCase.Execute(r.Context(), req.Query)
	if err != nil {
		api.Logger.Printf("handleChat: %v", err)
		respondError(w, toError(err))
		return
	}

	respondJSON(w, http.StatusOK, chatResponse{
		Response:    answer.Text,
		Steps:       answer.Steps,
		TotalTokens: answer.Usage.TotalTokens,
	})
}
