// internal/app/features/teams/view.go
package teams

import (
	"context"
	"time"

	userstore "github.com/deadlinesdragons/questhub/internal/app/store/users"
	"github.com/deadlinesdragons/questhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// teamView is the populated team shape returned by team reads: member,
// lead, mentor, and coordinator references are expanded into user
// summaries so the client does not need follow-up requests.
type teamView struct {
	ID      primitive.ObjectID `json:"id"`
	Name    string             `json:"name"`
	Members []models.Summary   `json:"members"`
	Lead    *models.Summary    `json:"team_lead,omitempty"`
	MaxSize int                `json:"max_size"`

	Mentor      *models.Summary     `json:"mentor,omitempty"`
	Coordinator *models.Summary     `json:"coordinator,omitempty"`
	ProjectID   *primitive.ObjectID `json:"project_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// populateTeam expands a team's user references into summaries with a
// single batched lookup.
func populateTeam(ctx context.Context, db *mongo.Database, team models.Team) (teamView, error) {
	ids := make([]primitive.ObjectID, 0, len(team.Members)+3)
	ids = append(ids, team.Members...)
	ids = append(ids, team.TeamLeadID)
	if team.MentorID != nil {
		ids = append(ids, *team.MentorID)
	}
	if team.CoordinatorID != nil {
		ids = append(ids, *team.CoordinatorID)
	}

	users := userstore.New(db)
	summaries, err := users.Summaries(ctx, ids)
	if err != nil {
		return teamView{}, err
	}

	view := teamView{
		ID:        team.ID,
		Name:      team.Name,
		Members:   make([]models.Summary, 0, len(team.Members)),
		MaxSize:   team.MaxSize,
		ProjectID: team.ProjectID,
		CreatedAt: team.CreatedAt,
		UpdatedAt: team.UpdatedAt,
	}
	for _, m := range team.Members {
		if s, ok := summaries[m]; ok {
			view.Members = append(view.Members, s)
		}
	}
	if s, ok := summaries[team.TeamLeadID]; ok {
		view.Lead = &s
	}
	if team.MentorID != nil {
		if s, ok := summaries[*team.MentorID]; ok {
			view.Mentor = &s
		}
	}
	if team.CoordinatorID != nil {
		if s, ok := summaries[*team.CoordinatorID]; ok {
			view.Coordinator = &s
		}
	}
	return view, nil
}
