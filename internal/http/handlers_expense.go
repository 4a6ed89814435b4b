package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"financeflow/internal/aggregate"
	"financeflow/internal/core"
)

type expensePayload struct {
	ID          string     `json:"id"`
	Date        string     `json:"date"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Amount      core.Money `json:"amount"`
}

// toExpense normalizes the payload: the date is canonicalized and a missing
// id gets a fresh uuid (ids are minted client-side, never by the store).
func (p expensePayload) toExpense() (core.Expense, error) {
	date, err := parseDate(p.Date)
	if err != nil {
		return core.Expense{}, err
	}
	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}
	return core.Expense{
		ID:          id,
		Date:        date,
		Category:    core.Category(p.Category),
		Description: p.Description,
		Amount:      p.Amount,
	}, nil
}

// parseDate accepts an RFC 3339 instant or a plain calendar date.
func parseDate(s string) (core.DateString, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return core.ToCanonical(t), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return core.ToCanonical(t), nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrInvalidDate, s)
}

func (s *Server) handleSaveExpense(w http.ResponseWriter, r *http.Request) {
	var payload expensePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	exp, err := payload.toExpense()
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Code: "validation_failed", Error: err.Error()})
		return
	}

	if err := s.svc.AddOrUpdate(r.Context(), exp); err != nil {
		writeCondition(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, exp)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeBadRequest(w, "missing expense id")
		return
	}

	if err := s.svc.Delete(r.Context(), id); err != nil {
		writeCondition(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	records := s.svc.Snapshot()

	if r.URL.Query().Has("year") || r.URL.Query().Has("month") {
		bucket, err := bucketFromQuery(r)
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}
		records = aggregate.FilterByBucket(records, bucket)
	}

	if records == nil {
		records = []core.Expense{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	bucket, err := bucketFromQuery(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.svc.Summary(bucket))
}

// bucketFromQuery reads year and month, defaulting to the current UTC month.
func bucketFromQuery(r *http.Request) (core.Bucket, error) {
	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())

	q := r.URL.Query()
	if v := q.Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return core.Bucket{}, fmt.Errorf("invalid year %q", v)
		}
		year = y
	}
	if v := q.Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return core.Bucket{}, fmt.Errorf("invalid month %q", v)
		}
		month = m
	}
	return core.NewBucket(year, time.Month(month)), nil
}
