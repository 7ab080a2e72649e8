package router

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/senyabanana/briefs-frontend/internal/handlers"
	"github.com/senyabanana/briefs-frontend/internal/metrics"
	"github.com/senyabanana/briefs-frontend/internal/session"
)

// Handlers - все обработчики приложения, собранные для маршрутизации.
type Handlers struct {
	Dashboard *handlers.DashboardHandler
	Briefs    *handlers.BriefHandler
	Questions *handlers.QuestionHandler
	Outcomes  *handlers.OutcomeHandler
	Accounts  *handlers.AccountHandler
	Status    *handlers.StatusHandler
}

// InitRoutes собирает маршруты приложения. Страницы под /buyers требуют
// сессию покупателя; /create-buyer и служебные адреса открыты.
func InitRoutes(h Handlers, sess *session.Manager, logger *zap.Logger) http.Handler {
	buyers := http.NewServeMux()

	buyers.HandleFunc("GET /buyers", h.Dashboard.Index)
	buyers.HandleFunc("GET /buyers/requirements/digital-outcomes-and-specialists", h.Dashboard.Requirements)

	prefix := "/buyers/frameworks/{frameworkSlug}/requirements/{lotSlug}"
	buyers.HandleFunc("GET "+prefix+"/create", h.Briefs.StartBrief)
	buyers.HandleFunc("POST "+prefix+"/create", h.Briefs.CreateBrief)
	buyers.HandleFunc("GET "+prefix+"/{briefID}", h.Briefs.Overview)
	buyers.HandleFunc("GET "+prefix+"/{briefID}/{sectionSlug}", h.Briefs.SectionSummary)
	buyers.HandleFunc("GET "+prefix+"/{briefID}/edit/{sectionSlug}/{questionID}", h.Briefs.EditQuestion)
	buyers.HandleFunc("POST "+prefix+"/{briefID}/edit/{sectionSlug}/{questionID}", h.Briefs.UpdateQuestion)
	buyers.HandleFunc("GET "+prefix+"/{briefID}/preview", h.Briefs.Preview)
	buyers.HandleFunc("GET "+prefix+"/{briefID}/publish", h.Briefs.PublishPage)
	buyers.HandleFunc("POST "+prefix+"/{briefID}/publish", h.Briefs.Publish)
	buyers.HandleFunc("GET "+prefix+"/{briefID}/timeline", h.Briefs.Timeline)
	buyers.HandleFunc("POST "+prefix+"/{briefID}/delete", h.Briefs.Delete)
	buyers.HandleFunc("POST "+prefix+"/{briefID}/withdraw", h.Briefs.Withdraw)
	buyers.HandleFunc("POST "+prefix+"/{briefID}/copy", h.Briefs.Copy)

	buyers.HandleFunc("GET "+prefix+"/{briefID}/responses", h.Questions.BriefResponses)
	buyers.HandleFunc("GET "+prefix+"/{briefID}/supplier-questions", h.Questions.SupplierQuestions)
	buyers.HandleFunc("GET "+prefix+"/{briefID}/supplier-questions/answer-question", h.Questions.AnswerQuestionPage)
	buyers.HandleFunc("POST "+prefix+"/{briefID}/supplier-questions/answer-question", h.Questions.AnswerQuestion)

	buyers.HandleFunc("GET "+prefix+"/{briefID}/award", h.Outcomes.AwardOrCancel)
	buyers.HandleFunc("POST "+prefix+"/{briefID}/award", h.Outcomes.AwardOrCancelDecision)
	buyers.HandleFunc("GET "+prefix+"/{briefID}/award-contract", h.Outcomes.Award)
	buyers.HandleFunc("POST "+prefix+"/{briefID}/award-contract", h.Outcomes.AwardSelect)
	buyers.HandleFunc("GET "+prefix+"/{briefID}/award/{briefResponseID}/contract-details", h.Outcomes.AwardDetails)
	buyers.HandleFunc("POST "+prefix+"/{briefID}/award/{briefResponseID}/contract-details", h.Outcomes.SubmitAwardDetails)
	buyers.HandleFunc("GET "+prefix+"/{briefID}/cancel", h.Outcomes.Cancel)
	buyers.HandleFunc("POST "+prefix+"/{briefID}/cancel", h.Outcomes.SubmitCancel)
	buyers.HandleFunc("GET "+prefix+"/{briefID}/cancel-award", h.Outcomes.CancelAward)
	buyers.HandleFunc("POST "+prefix+"/{briefID}/cancel-award", h.Outcomes.SubmitCancelAward)

	mux := http.NewServeMux()
	mux.Handle("/buyers", sess.RequireBuyer(buyers))
	mux.Handle("/buyers/", sess.RequireBuyer(buyers))

	mux.HandleFunc("GET /create-buyer/create", h.Accounts.CreateBuyerPage)
	mux.HandleFunc("POST /create-buyer/create", h.Accounts.CreateBuyer)

	mux.HandleFunc("GET /_status", h.Status.Status)
	mux.Handle("GET /metrics", metrics.Handler())

	return metrics.Middleware(requestLogging(logger, mux))
}
