package screening

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"psyfind/internal/dsm"
)

// StoredResult is an assessment outcome persisted for clinician review.
// ClinicalReport holds the unredacted text and must never be returned to
// end users.
type StoredResult struct {
	ID             uuid.UUID       `json:"id"`
	SessionID      string          `json:"session_id"`
	AssessmentType string          `json:"assessment_type"`
	Responses      map[string]int  `json:"responses"`
	Score          int             `json:"score"`
	Severity       string          `json:"severity"`
	Interpretation string          `json:"interpretation"`
	Candidates     []dsm.Candidate `json:"dsm_analysis"`
	ClinicalReport string          `json:"clinical_report"`
	CreatedAt      time.Time       `json:"created_at"`
}

type ResultRepository interface {
	Save(ctx context.Context, r *StoredResult) error
	BySession(ctx context.Context, sessionID string) ([]StoredResult, error)
}

type postgresResults struct {
	db *sql.DB
}

func NewResultRepository(db *sql.DB) ResultRepository {
	return &postgresResults{db: db}
}

func (r *postgresResults) Save(ctx context.Context, res *StoredResult) error {
	responsesJSON, err := json.Marshal(res.Responses)
	if err != nil {
		return err
	}
	candidatesJSON, err := json.Marshal(res.Candidates)
	if err != nil {
		return err
	}

	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO assessment_results (id, session_id, assessment_type, responses, score, severity, interpretation, dsm_analysis, clinical_report, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = r.db.ExecContext(ctx, query,
		res.ID, res.SessionID, res.AssessmentType, responsesJSON, res.Score,
		res.Severity, res.Interpretation, candidatesJSON, res.ClinicalReport, res.CreatedAt)
	return err
}

func (r *postgresResults) BySession(ctx context.Context, sessionID string) ([]StoredResult, error) {
	query := `
		SELECT id, session_id, assessment_type, responses, score, severity, interpretation, dsm_analysis, clinical_report, created_at
		FROM assessment_results WHERE session_id = $1 ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []StoredResult
	for rows.Next() {
		var res StoredResult
		var responsesJSON, candidatesJSON []byte
		if err := rows.Scan(
			&res.ID, &res.SessionID, &res.AssessmentType, &responsesJSON, &res.Score,
			&res.Severity, &res.Interpretation, &candidatesJSON, &res.ClinicalReport, &res.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(responsesJSON) > 0 {
			if err := json.Unmarshal(responsesJSON, &res.Responses); err != nil {
				return nil, fmt.Errorf("failed to unmarshal responses: %w", err)
			}
		}
		if len(candidatesJSON) > 0 {
			if err := json.Unmarshal(candidatesJSON, &res.Candidates); err != nil {
				return nil, fmt.Errorf("failed to unmarshal dsm analysis: %w", err)
			}
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
