package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/fesup-dev/forum-planner/backend/internal/config"
	"github.com/fesup-dev/forum-planner/backend/internal/domain"
	"github.com/fesup-dev/forum-planner/backend/internal/repository"
	"github.com/fesup-dev/forum-planner/backend/internal/solver"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	driver      *solver.Driver

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client, driver *solver.Driver) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		driver:      driver,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/participants", func(r chi.Router) {
			r.Post("/", h.CreateParticipant)
			r.Get("/", h.GetAllParticipants)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.participantInfo)
				r.Get("/", h.GetParticipant)
				r.Patch("/", h.UpdateParticipant)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteParticipant)
				r.Route("/preferences", func(r chi.Router) {
					r.Get("/", h.GetParticipantPreferences)
					r.Post("/", h.SubmitParticipantPreferences)
				})
			})
		})

		r.Route("/activities", func(r chi.Router) {
			r.Post("/", h.CreateActivity)
			r.Get("/", h.GetAllActivities)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.activityInfo)
				r.Get("/", h.GetActivity)
				r.Patch("/", h.UpdateActivity)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteActivity)
			})
		})

		r.Route("/rooms", func(r chi.Router) {
			r.Post("/", h.CreateRoom)
			r.Get("/", h.GetAllRooms)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.roomInfo)
				r.Get("/", h.GetRoom)
				r.Patch("/", h.UpdateRoom)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteRoom)
			})
		})

		r.Route("/timeslots", func(r chi.Router) {
			r.Post("/", h.CreateTimeslot)
			r.Get("/", h.GetAllTimeslots)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.timeslotInfo)
				r.Get("/", h.GetTimeslot)
				r.Patch("/", h.UpdateTimeslot)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteTimeslot)
			})
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", h.GetAllSessions)
			// 重新生成会整体替换已有场次，只有管理员可以触发
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/generate", h.GenerateSessions)
		})

		r.Route("/assignments", func(r chi.Router) {
			r.Get("/", h.GetAllAssignments)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.PurgeAssignments)
			r.Route("/solve", func(r chi.Router) {
				r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
				r.Post("/", h.StartSolve)
				r.Get("/status", h.GetSolveStatus)
				r.Get("/result", h.GetSolveResult)
			})
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.assignmentInfo)
				r.Get("/", h.GetAssignment)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Put("/session", h.OverrideAssignmentSession)
			})
		})
	})
}
