// internal/app/features/teams/removeproject.go
package teams

import (
	"context"
	"errors"
	"net/http"

	projectstore "github.com/deadlinesdragons/questhub/internal/app/store/projects"
	taskstore "github.com/deadlinesdragons/questhub/internal/app/store/tasks"
	teamstore "github.com/deadlinesdragons/questhub/internal/app/store/teams"
	"github.com/deadlinesdragons/questhub/internal/app/system/httpjson"
	"github.com/deadlinesdragons/questhub/internal/app/system/timeouts"
	"github.com/deadlinesdragons/questhub/internal/app/system/txn"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type removeProjectInput struct {
	TeamID    string `json:"teamId"`
	ProjectID string `json:"projectId"`
}

// HandleRemoveProject unlinks a project from its team and deletes the
// project along with all of its tasks.
func (h *Handler) HandleRemoveProject(w http.ResponseWriter, r *http.Request) {
	var in removeProjectInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	teamID, err := primitive.ObjectIDFromHex(in.TeamID)
	if err != nil {
		httpjson.BadRequest(w, "Invalid team ID")
		return
	}
	projectID, err := primitive.ObjectIDFromHex(in.ProjectID)
	if err != nil {
		httpjson.BadRequest(w, "Invalid project ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	teams := teamstore.New(h.DB)
	team, err := teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "Team not found")
			return
		}
		h.ErrLog.ServerError(w, "remove project: team lookup failed", err)
		return
	}
	if team.ProjectID == nil || *team.ProjectID != projectID {
		httpjson.BadRequest(w, "Project is not linked to this team")
		return
	}

	projects := projectstore.New(h.DB)
	tasks := taskstore.New(h.DB)

	var removed int64
	err = txn.WithTxn(ctx, h.DB.Client(), func(ctx context.Context) error {
		if err := teams.UnsetProject(ctx, teamID); err != nil {
			return err
		}
		var err error
		removed, err = tasks.DeleteByProject(ctx, projectID)
		if err != nil {
			return err
		}
		if err := projects.Delete(ctx, projectID); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return err
		}
		return nil
	})
	if err != nil {
		h.ErrLog.ServerError(w, "remove project failed", err)
		return
	}

	h.Log.Info("project removed from team",
		zap.String("team_id", teamID.Hex()),
		zap.String("project_id", projectID.Hex()),
		zap.Int64("tasks_deleted", removed))

	httpjson.Write(w, http.StatusOK, map[string]any{
		"msg": "Project removed from team successfully",
	})
}
