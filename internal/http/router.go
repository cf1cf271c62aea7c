package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"gym-console/backend/internal/config"
	"gym-console/backend/internal/domain/checkin"
	"gym-console/backend/internal/domain/enrollment"
	"gym-console/backend/internal/domain/gym"
	"gym-console/backend/internal/domain/plan"
	"gym-console/backend/internal/domain/planchange"
	"gym-console/backend/internal/domain/report"
	"gym-console/backend/internal/domain/review"
	"gym-console/backend/internal/domain/stats"
	"gym-console/backend/internal/domain/user"
	"gym-console/backend/internal/handlers"
	"gym-console/backend/internal/middleware"
	"gym-console/backend/internal/session"
	"gym-console/backend/internal/store"
)

type RouterDeps struct {
	Cfg        *config.Config
	Logger     *zap.Logger
	AuthClient *auth.Client

	Sessions *session.Loader

	GymSvc        *gym.Service
	MemberSvc     *user.Service
	EnrollmentSvc *enrollment.Service
	PlanChangeSvc *planchange.Service
	ReportSvc     *report.Service
	StatsSvc      *stats.Service
	ReviewRepo    *review.Repo
	CheckinRepo   *checkin.Repo
	Uploads       *handlers.Uploads
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestLogging(d.Logger))
	r.Use(middleware.CORS(d.Cfg.Server.AllowedOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, 200, map[string]any{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)})
	})

	// Protected routes
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.WithAuth(d.AuthClient))

		pr.Get("/v1/me", func(w http.ResponseWriter, r *http.Request) {
			sess, ok := d.loadSession(w, r)
			if !ok {
				return
			}
			WriteJSON(w, 200, map[string]any{
				"uid":     sess.UID,
				"email":   sess.Email,
				"profile": sess.Profile,
				"gym":     sess.Gym,
			})
		})

		// ===== Platform routes (super admin) =====
		pr.Post("/v1/gyms", func(w http.ResponseWriter, r *http.Request) {
			sess, ok := d.requireSuperAdmin(w, r)
			if !ok {
				return
			}

			var in gym.ProvisionInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.GymSvc.Provision(r.Context(), sess.UID, in)
			if err != nil {
				status, msg := mapGymError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Get("/v1/gyms", func(w http.ResponseWriter, r *http.Request) {
			if _, ok := d.requireSuperAdmin(w, r); !ok {
				return
			}
			out, err := d.GymSvc.List(r.Context(), queryInt(r, "limit"))
			if err != nil {
				status, msg := mapGymError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"gyms": out})
		})

		pr.Get("/v1/gyms/{gymId}", func(w http.ResponseWriter, r *http.Request) {
			if _, ok := d.requireSuperAdmin(w, r); !ok {
				return
			}
			out, err := d.GymSvc.Get(r.Context(), chi.URLParam(r, "gymId"))
			if err != nil {
				status, msg := mapGymError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/gyms/{gymId}/deactivate", func(w http.ResponseWriter, r *http.Request) {
			if _, ok := d.requireSuperAdmin(w, r); !ok {
				return
			}
			out, err := d.GymSvc.SetActive(r.Context(), chi.URLParam(r, "gymId"), false)
			if err != nil {
				status, msg := mapGymError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/gyms/{gymId}/reactivate", func(w http.ResponseWriter, r *http.Request) {
			if _, ok := d.requireSuperAdmin(w, r); !ok {
				return
			}
			out, err := d.GymSvc.SetActive(r.Context(), chi.URLParam(r, "gymId"), true)
			if err != nil {
				status, msg := mapGymError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Get("/v1/platform/stats", func(w http.ResponseWriter, r *http.Request) {
			if _, ok := d.requireSuperAdmin(w, r); !ok {
				return
			}
			out, err := d.GymSvc.Stats(r.Context())
			if err != nil {
				status, msg := mapGymError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Get("/v1/platform/flaggedGyms", func(w http.ResponseWriter, r *http.Request) {
			if _, ok := d.requireSuperAdmin(w, r); !ok {
				return
			}
			out, err := d.ReportSvc.FlaggedGyms(r.Context())
			if err != nil {
				status, msg := mapReportError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"flaggedGyms": out, "threshold": report.FlagThreshold})
		})

		// ===== Gym routes (gym admin, own gym) =====
		pr.Get("/v1/gym", func(w http.ResponseWriter, r *http.Request) {
			sess, _, ok := d.requireGymAdmin(w, r)
			if !ok {
				return
			}
			WriteJSON(w, 200, sess.Gym)
		})

		pr.Put("/v1/gym/settings", func(w http.ResponseWriter, r *http.Request) {
			_, gymID, ok := d.requireGymAdmin(w, r)
			if !ok {
				return
			}

			var in gym.UpdateSettingsInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.GymSvc.UpdateSettings(r.Context(), gymID, in)
			if err != nil {
				status, msg := mapGymError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/gym/images/signedUrl", func(w http.ResponseWriter, r *http.Request) {
			_, gymID, ok := d.requireGymAdmin(w, r)
			if !ok {
				return
			}
			d.Uploads.CreateGymImageURL(w, r, gymID)
		})

		pr.Post("/v1/gym/images", func(w http.ResponseWriter, r *http.Request) {
			_, gymID, ok := d.requireGymAdmin(w, r)
			if !ok {
				return
			}

			var body struct {
				ObjectPath string `json:"objectPath"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			if err := d.GymSvc.AppendImage(r.Context(), gymID, strings.TrimSpace(body.ObjectPath)); err != nil {
				status, msg := mapGymError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"success": true})
		})

		// ===== Member routes =====
		pr.Get("/v1/gym/members", func(w http.ResponseWriter, r *http.Request) {
			_, gymID, ok := d.requireGymAdmin(w, r)
			if !ok {
				return
			}

			f := user.MemberFilter{
				Status:     r.URL.Query().Get("status"),
				Membership: plan.Status(r.URL.Query().Get("membership")),
				Search:     strings.TrimSpace(r.URL.Query().Get("q")),
			}
			out, err := d.MemberSvc.ListMembers(r.Context(), gymID, f)
			if err != nil {
				status, msg := mapMemberError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"members": out})
		})

		pr.Get("/v1/gym/members/{memberUid}", func(w http.ResponseWriter, r *http.Request) {
			_, gymID, ok := d.requireGymAdmin(w, r)
			if !ok {
				return
			}
			out, err := d.MemberSvc.GetMember(r.Context(), gymID, chi.URLParam(r, "memberUid"))
			if err != nil {
				status, msg := mapMemberError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Delete("/v1/gym/members/{memberUid}", func(w http.ResponseWriter, r *http.Request) {
			sess, gymID, ok := d.requireGymAdmin(w, r)
			if !ok {
				return
			}
			memberUid := chi.URLParam(r, "memberUid")
			if err := d.MemberSvc.RemoveMember(r.Context(), sess.UID, gymID, memberUid); err != nil {
				status, msg := mapMemberError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"ok": true, "deleted": memberUid})
		})

		// ===== Enrollment routes =====
		pr.Get("/v1/gym/enrollments", func(w http.ResponseWriter, r *http.Request) {
			_, gymID, ok := d.requireGymAdmin(w, r)
			if !ok {
				return
			}
			out, err := d.EnrollmentSvc.ListByGym(r.Context(), gymID, queryInt(r, "limit"))
			if err != nil {
				status, msg := mapEnrollmentError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"enrollments": out})
		})

		pr.Post("/v1/gym/members/{memberUid}/approve", func(w http.ResponseWriter, r *http.Request) {
			sess, gymID, ok := d.requireGymAdmin(w, r)
			if !ok {
				return
			}
			out, err := d.EnrollmentSvc.Approve(r.Context(), sess.UID, gymID, chi.URLParam(r, "memberUid"))
			if err != nil {
				status, msg := mapEnrollmentError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/gym/members/{memberUid}/reject", func(w http.ResponseWriter, r *http.Request) {
			sess, gymID, ok := d.requireGymAdmin(w, r)
			if !ok {
				return
			}
			out, err := d.EnrollmentSvc.Reject(r.Context(), sess.UID, gymID, chi.URLParam(r, "memberUid"))
			if err != nil {
				status, msg := mapEnrollmentError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/gym/members/{memberUid}/setPending", func(w http.ResponseWriter, r *http.Request) {
			sess, gymID, ok := d.requireGymAdmin(w, r)
			if !ok {
				return
			}
			out, err := d.EnrollmentSvc.SetPending(r.Context(), sess.UID, gymID, chi.URLParam(r, "memberUid"))
			if err != nil {
				status, msg := mapEnrollmentError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		// ===== Plan change routes =====
		pr.Get("/v1/gym/planChanges", func(w http.ResponseWriter, r *http.Request) {
			_, gymID, ok := d.requireGymAdmin(w, r)
			if !ok {
				return
			}
			out, err := d.PlanChangeSvc.List(r.Context(), gymID, queryInt(r, "limit"))
			if err != nil {
				status, msg := mapPlanChangeError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"requests": out})
		})

		pr.Post("/v1/gym/planChanges/{requestId}/approve", func(w http.ResponseWriter, r *http.Request) {
			sess, gymID, ok := d.requireGymAdmin(w, r)
			if !ok {
				return
			}
			out, err := d.PlanChangeSvc.Approve(r.Context(), sess.UID, gymID, chi.URLParam(r, "requestId"))
			if err != nil {
				status, msg := mapPlanChangeError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/gym/planChanges/{requestId}/reject", func(w http.ResponseWriter, r *http.Request) {
			sess, gymID, ok := d.requireGymAdmin(w, r)
			if !ok {
				return
			}
			out, err := d.PlanChangeSvc.Reject(r.Context(), sess.UID, gymID, chi.URLParam(r, "requestId"))
			if err != nil {
				status, msg := mapPlanChangeError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		// ===== Report routes =====
		pr.Get("/v1/gym/reports", func(w http.ResponseWriter, r *http.Request) {
			_, gymID, ok := d.requireGymAdmin(w, r)
			if !ok {
				return
			}
			out, err := d.ReportSvc.ListByGym(r.Context(), gymID, queryInt(r, "limit"))
			if err != nil {
				status, msg := mapReportError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"reports": out})
		})

		pr.Post("/v1/gym/reports/{reportId}/adjudicate", func(w http.ResponseWriter, r *http.Request) {
			sess, gymID, ok := d.requireGymAdmin(w, r)
			if !ok {
				return
			}

			var body struct {
				Status     string `json:"status"`
				AdminNotes string `json:"adminNotes,omitempty"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			err := d.ReportSvc.Adjudicate(r.Context(), sess.UID, gymID, chi.URLParam(r, "reportId"), body.Status, body.AdminNotes)
			if err != nil {
				status, msg := mapReportError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"success": true})
		})

		// ===== Review & check-in routes =====
		pr.Get("/v1/gym/reviews", func(w http.ResponseWriter, r *http.Request) {
			_, gymID, ok := d.requireGymAdmin(w, r)
			if !ok {
				return
			}
			out, err := d.ReviewRepo.ListByGym(r.Context(), gymID, queryInt(r, "limit"))
			if err != nil {
				status, msg := mapStoreError(err, review.ErrBadRequest)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"reviews": out, "summary": review.Summarize(out)})
		})

		pr.Get("/v1/gym/checkins/active", func(w http.ResponseWriter, r *http.Request) {
			_, gymID, ok := d.requireGymAdmin(w, r)
			if !ok {
				return
			}
			out, err := d.CheckinRepo.ListActive(r.Context(), gymID)
			if err != nil {
				status, msg := mapStoreError(err, checkin.ErrBadRequest)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"checkIns": out})
		})

		pr.Get("/v1/gym/checkins/history", func(w http.ResponseWriter, r *http.Request) {
			_, gymID, ok := d.requireGymAdmin(w, r)
			if !ok {
				return
			}
			out, err := d.CheckinRepo.ListHistory(r.Context(), gymID, r.URL.Query().Get("date"), queryInt(r, "limit"))
			if err != nil {
				status, msg := mapStoreError(err, checkin.ErrBadRequest)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"history": out})
		})

		// ===== Stats & payments =====
		pr.Get("/v1/gym/stats", func(w http.ResponseWriter, r *http.Request) {
			_, gymID, ok := d.requireGymAdmin(w, r)
			if !ok {
				return
			}
			out, err := d.StatsSvc.GymStats(r.Context(), gymID)
			if err != nil {
				status, msg := mapStoreError(err, nil)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Get("/v1/gym/payments/export", func(w http.ResponseWriter, r *http.Request) {
			_, gymID, ok := d.requireGymAdmin(w, r)
			if !ok {
				return
			}
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", `attachment; filename="payments.csv"`)
			if err := d.StatsSvc.WritePaymentsCSV(r.Context(), w, gymID); err != nil {
				d.Logger.Error("payments export failed", zap.String("gymId", gymID), zap.Error(err))
			}
		})
	})

	return r
}

// loadSession resolves the caller's profile and gym; failures are
// written to the response directly.
func (d RouterDeps) loadSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	au, ok := middleware.GetAuthUser(r.Context())
	if !ok {
		Fail(w, 401, "unauthorized")
		return nil, false
	}
	sess, err := d.Sessions.Load(r.Context(), au)
	if err != nil {
		if errors.Is(err, session.ErrForbidden) {
			Fail(w, 403, err.Error())
			return nil, false
		}
		if store.IsPermissionDenied(err) {
			Fail(w, 403, "permission denied")
			return nil, false
		}
		Fail(w, 500, err.Error())
		return nil, false
	}
	return sess, true
}

func (d RouterDeps) requireSuperAdmin(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := d.loadSession(w, r)
	if !ok {
		return nil, false
	}
	if err := sess.RequireSuperAdmin(); err != nil {
		Fail(w, 403, err.Error())
		return nil, false
	}
	return sess, true
}

func (d RouterDeps) requireGymAdmin(w http.ResponseWriter, r *http.Request) (*session.Session, string, bool) {
	sess, ok := d.loadSession(w, r)
	if !ok {
		return nil, "", false
	}
	gymID, err := sess.RequireGymAdmin()
	if err != nil {
		Fail(w, 403, err.Error())
		return nil, "", false
	}
	return sess, gymID, true
}

func queryInt(r *http.Request, key string) int {
	if s := r.URL.Query().Get(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return 0
}

func mapGymError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case errors.Is(err, gym.ErrUnauthorized):
		return 403, err.Error()
	case errors.Is(err, gym.ErrNotFound):
		return 404, err.Error()
	case errors.Is(err, gym.ErrBadRequest), errors.Is(err, gym.ErrEmailInUse):
		return 400, err.Error()
	case store.IsPermissionDenied(err):
		return 403, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapMemberError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case errors.Is(err, user.ErrForbidden):
		return 403, err.Error()
	case errors.Is(err, user.ErrNotFound):
		return 404, err.Error()
	case errors.Is(err, user.ErrBadRequest):
		return 400, err.Error()
	case store.IsPermissionDenied(err):
		return 403, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapEnrollmentError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case errors.Is(err, enrollment.ErrUnauthorized):
		return 403, err.Error()
	case errors.Is(err, enrollment.ErrNotFound), errors.Is(err, user.ErrNotFound):
		return 404, err.Error()
	case errors.Is(err, enrollment.ErrConflict):
		return 409, err.Error()
	case errors.Is(err, enrollment.ErrBadRequest):
		return 400, err.Error()
	case store.IsPermissionDenied(err):
		return 403, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapPlanChangeError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case errors.Is(err, planchange.ErrNotFound):
		return 404, err.Error()
	case errors.Is(err, planchange.ErrConflict):
		return 409, err.Error()
	case errors.Is(err, planchange.ErrBadRequest):
		return 400, err.Error()
	case store.IsPermissionDenied(err):
		return 403, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapReportError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case errors.Is(err, report.ErrNotFound):
		return 404, err.Error()
	case errors.Is(err, report.ErrBadRequest):
		return 400, err.Error()
	case store.IsPermissionDenied(err):
		return 403, err.Error()
	default:
		return 500, err.Error()
	}
}

// mapStoreError covers read-only surfaces whose only domain sentinel is
// a bad-request error.
func mapStoreError(err error, badRequest error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case badRequest != nil && errors.Is(err, badRequest):
		return 400, err.Error()
	case store.IsPermissionDenied(err):
		return 403, err.Error()
	default:
		return 500, err.Error()
	}
}
