// internal/app/features/teams/addproject.go
package teams

import (
	"context"
	"errors"
	"net/http"
	"time"

	projectstore "github.com/deadlinesdragons/questhub/internal/app/store/projects"
	teamstore "github.com/deadlinesdragons/questhub/internal/app/store/teams"
	"github.com/deadlinesdragons/questhub/internal/app/system/authz"
	"github.com/deadlinesdragons/questhub/internal/app/system/httpjson"
	"github.com/deadlinesdragons/questhub/internal/app/system/timeouts"
	"github.com/deadlinesdragons/questhub/internal/app/system/txn"
	"github.com/deadlinesdragons/questhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type addProjectInput struct {
	TeamID      string     `json:"teamId"`
	ProjectName string     `json:"projectName"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// HandleAddProject creates a project for a team and links the two in
// both directions. One project per team; the caller must be a member.
func (h *Handler) HandleAddProject(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "Not authorized")
		return
	}

	var in addProjectInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	teamID, err := primitive.ObjectIDFromHex(in.TeamID)
	if err != nil {
		httpjson.BadRequest(w, "Invalid team ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	teams := teamstore.New(h.DB)
	team, err := teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "Team not found")
			return
		}
		h.ErrLog.ServerError(w, "add project: team lookup failed", err)
		return
	}
	if !team.HasMember(uid) {
		httpjson.Forbidden(w, "Only team members can add a project")
		return
	}
	if team.ProjectID != nil {
		httpjson.BadRequest(w, "Team already has a project")
		return
	}

	start := time.Now().UTC()
	if in.StartDate != nil {
		start = in.StartDate.UTC()
	}
	proto := models.Project{
		Name:          in.ProjectName,
		Description:   in.Description,
		TeamID:        &teamID,
		MentorID:      team.MentorID,
		CoordinatorID: team.CoordinatorID,
		StartDate:     start,
		EndDate:       in.EndDate,
	}

	projects := projectstore.New(h.DB)
	var project models.Project
	err = txn.WithTxn(ctx, h.DB.Client(), func(ctx context.Context) error {
		var err error
		project, err = projects.Create(ctx, proto)
		if err != nil {
			return err
		}
		return teams.SetProject(ctx, teamID, project.ID)
	})
	if err != nil {
		if projectstore.IsClientError(err) {
			httpjson.BadRequest(w, err.Error())
			return
		}
		h.ErrLog.ServerError(w, "add project failed", err)
		return
	}

	h.Log.Info("project added to team",
		zap.String("team_id", teamID.Hex()),
		zap.String("project_id", project.ID.Hex()))

	httpjson.Write(w, http.StatusCreated, map[string]any{
		"msg":     "Project added to team successfully",
		"project": project,
	})
}
