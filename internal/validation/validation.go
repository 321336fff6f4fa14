package validation

import (
    "encoding/json"
    "net/http"
    "unicode/utf8"

    "redline/internal/errors"
)

// ReviewRequest carries the two document versions to diff.
type ReviewRequest struct {
    Original string `json:"original"`
    Revised  string `json:"revised"`
}

// ValidateReviewRequest parses and bounds-checks a session-creation request.
// Documents are size-capped before they reach the engine.
func ValidateReviewRequest(r *http.Request, maxBytes int) (*ReviewRequest, error) {
    var req ReviewRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        return nil, errors.ValidationError("invalid request body", nil)
    }

    if err := ValidateDocument(req.Original, maxBytes); err != nil {
        return nil, err
    }
    if err := ValidateDocument(req.Revised, maxBytes); err != nil {
        return nil, err
    }

    return &req, nil
}

// ValidateDocument rejects documents the engine should not see: oversized
// ones and non-UTF-8 input.
func ValidateDocument(doc string, maxBytes int) error {
    if maxBytes > 0 && len(doc) > maxBytes {
        return errors.ValidationError("document too large", map[string]int{
            "size":  len(doc),
            "limit": maxBytes,
        })
    }
    if !utf8.ValidString(doc) {
        return errors.ValidationError("document is not valid UTF-8", nil)
    }
    return nil
}

// DecisionRequest records a reviewer decision on one change.
type DecisionRequest struct {
    ChangeID string `json:"change_id"`
    State    string `json:"state"`
}

func ValidateDecisionRequest(r *http.Request) (*DecisionRequest, error) {
    var req DecisionRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        return nil, errors.ValidationError("invalid request body", nil)
    }
    if req.ChangeID == "" {
        return nil, errors.ValidationError("change_id is required", nil)
    }
    switch req.State {
    case "pending", "accepted", "rejected":
    default:
        return nil, errors.ValidationError("state must be pending, accepted or rejected", nil)
    }
    return &req, nil
}
