package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/spetersoncode/postpilot/images"
	"github.com/spetersoncode/postpilot/pipeline"
	"github.com/spetersoncode/postpilot/store"
	"github.com/spetersoncode/postpilot/telegram"
)

const defaultImageCount = 1

type generateRequest struct {
	pipeline.Request
	GenerateImages bool `json:"generate_images,omitempty"`
	ImageCount     int  `json:"image_count,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	result, err := s.generator.Generate(r.Context(), req.Request)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if result.Failed() {
		s.writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}

	var imgs []images.Image
	if req.GenerateImages && s.imageGen != nil && result.ImagePrompt != "" {
		count := req.ImageCount
		if count == 0 {
			count = defaultImageCount
		}
		imgs, err = s.imageGen.Generate(r.Context(), result.ImagePrompt, string(req.Style), count)
		if err != nil {
			// Image failure degrades the response, it does not sink the content.
			s.logger.Error("image generation failed", "topic", req.Topic, "error", err)
		}
	}

	rec := s.store.Save(result, imgs, s.approvalChatID)
	s.notifyReviewer(r, rec)
	s.writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) notifyReviewer(r *http.Request, rec *store.Record) {
	if s.notifier == nil || s.approvalChatID == 0 {
		return
	}
	_, err := s.notifier.SendApprovalRequest(r.Context(),
		s.approvalChatID, rec.ID, rec.Result.Metadata.Topic, rec.Result.FinalContent)
	if err != nil {
		s.logger.Error("sending approval request", "content_id", rec.ID, "error", err)
	}
}

type variationsRequest struct {
	pipeline.Request
	Count int `json:"count,omitempty"`
}

type variationsResponse struct {
	Requested int                `json:"requested"`
	Results   []*pipeline.Result `json:"results"`
}

func (s *Server) handleVariations(w http.ResponseWriter, r *http.Request) {
	var req variationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Count <= 0 {
		req.Count = 3
	}

	results, err := s.generator.Variations(r.Context(), req.Request, req.Count)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, variationsResponse{Requested: req.Count, Results: results})
}

func (s *Server) handleListContent(w http.ResponseWriter, r *http.Request) {
	records := s.store.List(r.URL.Query().Get("status"))
	s.writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetContent(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteContent(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.PathValue("id")); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type approvalRequest struct {
	Approved bool `json:"approved"`
}

func (s *Server) handleApproval(w http.ResponseWriter, r *http.Request) {
	var req approvalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	rec, err := s.resolveApproval(r, r.PathValue("id"), req.Approved)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// resolveApproval applies a reviewer decision: rejection is terminal,
// approval triggers publishing when a publisher is configured.
func (s *Server) resolveApproval(r *http.Request, contentID string, approved bool) (*store.Record, error) {
	if !approved {
		return s.store.Transition(contentID, store.StatusRejected)
	}

	rec, err := s.store.Transition(contentID, store.StatusApproved)
	if err != nil {
		return nil, err
	}
	if s.publisher == nil {
		return rec, nil
	}

	post, err := s.publisher.PostText(r.Context(), rec.Result.FinalContent)
	if err != nil {
		s.logger.Error("publishing approved content", "content_id", contentID, "error", err)
		return s.store.MarkPostFailed(contentID, err)
	}
	return s.store.MarkPosted(contentID, post.ID)
}

func (s *Server) handleTelegramWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	update, err := telegram.ParseUpdate(body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	decision := telegram.ParseDecision(update)
	if decision == nil {
		// Not an approval decision; acknowledge and move on.
		w.WriteHeader(http.StatusOK)
		return
	}

	rec, err := s.resolveApproval(r, decision.ContentID, decision.Approved())
	if err != nil {
		s.logger.Error("resolving telegram decision",
			"content_id", decision.ContentID, "error", err)
		s.answerCallback(r, decision, "Could not process that decision.")
		// The webhook itself succeeded; Telegram should not redeliver.
		w.WriteHeader(http.StatusOK)
		return
	}

	s.answerCallback(r, decision, decisionReply(rec))
	w.WriteHeader(http.StatusOK)
}

func decisionReply(rec *store.Record) string {
	switch rec.Status {
	case store.StatusPosted:
		return "Approved and posted to LinkedIn."
	case store.StatusApproved:
		return "Approved."
	case store.StatusPostFailed:
		return "Approved, but posting failed. It will be retried."
	case store.StatusRejected:
		return "Rejected. The content will not be posted."
	default:
		return "Decision recorded."
	}
}

func (s *Server) answerCallback(r *http.Request, d *telegram.Decision, text string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.AnswerCallback(r.Context(), d.QueryID, text); err != nil {
		s.logger.Error("answering callback", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	var notFound *store.ErrNotFound
	var invalid *store.ErrInvalidTransition
	switch {
	case errors.As(err, &notFound):
		s.writeError(w, http.StatusNotFound, err)
	case errors.As(err, &invalid):
		s.writeError(w, http.StatusConflict, err)
	default:
		s.writeError(w, http.StatusInternalServerError, err)
	}
}
