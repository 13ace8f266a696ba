// internal/app/features/admin/myteams.go
package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	projectstore "github.com/deadlinesdragons/questhub/internal/app/store/projects"
	taskstore "github.com/deadlinesdragons/questhub/internal/app/store/tasks"
	teamstore "github.com/deadlinesdragons/questhub/internal/app/store/teams"
	userstore "github.com/deadlinesdragons/questhub/internal/app/store/users"
	"github.com/deadlinesdragons/questhub/internal/app/system/authz"
	"github.com/deadlinesdragons/questhub/internal/app/system/httpjson"
	"github.com/deadlinesdragons/questhub/internal/app/system/timeouts"
	"github.com/deadlinesdragons/questhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// The my-teams response mirrors the dashboard's needs: each team is
// expanded three levels deep (team -> project -> tasks -> assignees)
// so the client renders the whole board from one request.

type teamDetail struct {
	ID      primitive.ObjectID `json:"id"`
	Name    string             `json:"name"`
	Members []models.Summary   `json:"members"`
	Lead    *models.Summary    `json:"team_lead,omitempty"`
	MaxSize int                `json:"max_size"`
	Project *projectDetail     `json:"project,omitempty"`
}

type projectDetail struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Tasks       []taskDetail       `json:"tasks"`
}

type taskDetail struct {
	ID               primitive.ObjectID `json:"id"`
	Name             string             `json:"name"`
	CompletionStatus string             `json:"completion_status"`
	EffectiveStatus  string             `json:"effective_status"`
	Assignees        []models.Summary   `json:"assignees"`
	Deadline         *time.Time         `json:"deadline,omitempty"`
	Difficulty       string             `json:"difficulty"`
}

// ServeMyTeams returns the teams the caller mentors and coordinates,
// fully populated.
func (h *Handler) ServeMyTeams(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "Not authorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	teams := teamstore.New(h.DB)
	mentored, err := teams.FindByMentor(ctx, uid)
	if err != nil {
		h.ErrLog.ServerError(w, "my-teams: mentored lookup failed", err)
		return
	}
	coordinated, err := teams.FindByCoordinator(ctx, uid)
	if err != nil {
		h.ErrLog.ServerError(w, "my-teams: coordinated lookup failed", err)
		return
	}

	mentoredViews, err := h.expandTeams(ctx, mentored)
	if err != nil {
		h.ErrLog.ServerError(w, "my-teams: expand mentored failed", err)
		return
	}
	coordinatedViews, err := h.expandTeams(ctx, coordinated)
	if err != nil {
		h.ErrLog.ServerError(w, "my-teams: expand coordinated failed", err)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"success":          true,
		"mentoredTeams":    mentoredViews,
		"coordinatedTeams": coordinatedViews,
	})
}

func (h *Handler) expandTeams(ctx context.Context, list []models.Team) ([]teamDetail, error) {
	users := userstore.New(h.DB)
	projects := projectstore.New(h.DB)
	tasks := taskstore.New(h.DB)
	now := time.Now().UTC()

	out := make([]teamDetail, 0, len(list))
	for _, team := range list {
		detail := teamDetail{
			ID:      team.ID,
			Name:    team.Name,
			Members: make([]models.Summary, 0, len(team.Members)),
			MaxSize: team.MaxSize,
		}

		ids := append(append([]primitive.ObjectID{}, team.Members...), team.TeamLeadID)
		summaries, err := users.Summaries(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, m := range team.Members {
			if s, ok := summaries[m]; ok {
				detail.Members = append(detail.Members, s)
			}
		}
		if s, ok := summaries[team.TeamLeadID]; ok {
			detail.Lead = &s
		}

		if team.ProjectID != nil {
			project, err := projects.GetByID(ctx, *team.ProjectID)
			switch {
			case errors.Is(err, mongo.ErrNoDocuments):
				// Dangling reference; render the team without a project.
			case err != nil:
				return nil, err
			default:
				pd := projectDetail{
					ID:          project.ID,
					Name:        project.Name,
					Description: project.Description,
					Tasks:       []taskDetail{},
				}
				projectTasks, err := tasks.FindByProject(ctx, project.ID)
				if err != nil {
					return nil, err
				}
				for _, task := range projectTasks {
					assignees, err := users.Summaries(ctx, task.Assignees)
					if err != nil {
						return nil, err
					}
					td := taskDetail{
						ID:               task.ID,
						Name:             task.Name,
						CompletionStatus: task.CompletionStatus,
						EffectiveStatus:  task.EffectiveStatus(now),
						Assignees:        make([]models.Summary, 0, len(task.Assignees)),
						Deadline:         task.Deadline,
						Difficulty:       task.Difficulty,
					}
					for _, a := range task.Assignees {
						if s, ok := assignees[a]; ok {
							td.Assignees = append(td.Assignees, s)
						}
					}
					pd.Tasks = append(pd.Tasks, td)
				}
				detail.Project = &pd
			}
		}

		out = append(out, detail)
	}
	return out, nil
}
