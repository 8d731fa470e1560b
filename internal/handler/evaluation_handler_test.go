package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/cinofilo-api/internal/config"
	"github.com/noah-isme/cinofilo-api/internal/dto"
	"github.com/noah-isme/cinofilo-api/internal/handler"
	"github.com/noah-isme/cinofilo-api/internal/models"
	"github.com/noah-isme/cinofilo-api/internal/repository"
	"github.com/noah-isme/cinofilo-api/internal/router"
	"github.com/noah-isme/cinofilo-api/internal/service"
	"github.com/noah-isme/cinofilo-api/pkg/ai"
)

type scriptedGrader struct {
	result ai.GradingResult
	err    error
	calls  int
}

func (g *scriptedGrader) Evaluate(_ context.Context, _ ai.GradingInput) (ai.GradingResult, error) {
	g.calls++
	return g.result, g.err
}

func setupEvaluationApp(t *testing.T, grader ai.Evaluator, userID string) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Course{}, &models.CaseStudy{}, &models.CaseStudyAttempt{}))

	logger := zerolog.New(io.Discard)
	caseStudyRepo := repository.NewCaseStudyRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	evaluationService := service.NewEvaluationService(caseStudyRepo, attemptRepo, grader, nil, nil, logger)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test", JWTSecret: "secret"}, router.Dependencies{
		EvaluationHandler: handler.NewEvaluationHandler(evaluationService, logger),
		JWTMiddleware: func(c *fiber.Ctx) error {
			if userID != "" {
				c.Locals("user_id", userID)
				c.Locals("user_role", models.RoleStudent)
			}
			return c.Next()
		},
	})

	return app, db
}

func seedEvaluationCaseStudy(t *testing.T, db *gorm.DB) models.CaseStudy {
	t.Helper()

	course := models.Course{Name: "Educazione Base", Description: "Corso base"}
	require.NoError(t, db.Create(&course).Error)

	caseStudy := models.CaseStudy{
		CourseID:    course.ID,
		Title:       "Cane che tira al guinzaglio",
		Scenario:    "Un labrador di due anni tira costantemente al guinzaglio.",
		ModelAnswer: "Fermarsi quando il cane tira e premiare il guinzaglio morbido.",
		Hints:       "Pensa al rinforzo della posizione corretta.",
	}
	require.NoError(t, db.Create(&caseStudy).Error)
	return caseStudy
}

func postEvaluate(t *testing.T, app *fiber.App, payload interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/case-study/evaluate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func TestEvaluateEndpointCorrectVerdict(t *testing.T) {
	grader := &scriptedGrader{result: ai.GradingResult{IsCorrect: true, Feedback: "CORRETTO. Ottima analisi del comportamento."}}
	app, db := setupEvaluationApp(t, grader, "11111111-1111-4111-8111-111111111111")
	caseStudy := seedEvaluationCaseStudy(t, db)

	resp := postEvaluate(t, app, dto.EvaluateRequest{
		CaseStudyID:   caseStudy.ID,
		StudentAnswer: "Mi fermo appena il guinzaglio va in tensione e premio il ritorno al mio fianco.",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result dto.EvaluateResponse
	decodeResponse(t, resp, &result)
	require.True(t, result.Success)
	require.True(t, result.IsCorrect)
	require.Equal(t, "CORRETTO. Ottima analisi del comportamento.", result.Feedback)
	require.Equal(t, 1, result.AttemptNumber)
	require.NotEmpty(t, result.AttemptID)

	var attempts []models.CaseStudyAttempt
	require.NoError(t, db.Where("case_study_id = ?", caseStudy.ID).Find(&attempts).Error)
	require.Len(t, attempts, 1)
	require.Equal(t, result.AttemptID, attempts[0].ID)
	require.True(t, attempts[0].IsCorrect)
}

func TestEvaluateEndpointErrorBodies(t *testing.T) {
	grader := &scriptedGrader{err: errors.New("oracle down")}
	app, db := setupEvaluationApp(t, grader, "22222222-2222-4222-8222-222222222222")
	caseStudy := seedEvaluationCaseStudy(t, db)

	cases := []struct {
		name    string
		payload interface{}
		status  int
		message string
	}{
		{
			name:    "missing case study id",
			payload: dto.EvaluateRequest{StudentAnswer: "risposta"},
			status:  fiber.StatusBadRequest,
			message: "Dati mancanti",
		},
		{
			name:    "blank answer",
			payload: dto.EvaluateRequest{CaseStudyID: caseStudy.ID, StudentAnswer: "   "},
			status:  fiber.StatusBadRequest,
			message: "Dati mancanti",
		},
		{
			name:    "unknown case study",
			payload: dto.EvaluateRequest{CaseStudyID: "99999999-9999-4999-8999-999999999999", StudentAnswer: "risposta"},
			status:  fiber.StatusNotFound,
			message: "Caso di studio non trovato",
		},
		{
			name:    "oracle failure",
			payload: dto.EvaluateRequest{CaseStudyID: caseStudy.ID, StudentAnswer: "risposta completa"},
			status:  fiber.StatusInternalServerError,
			message: "Errore nella valutazione AI",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postEvaluate(t, app, tc.payload)
			require.Equal(t, tc.status, resp.StatusCode)

			var body struct {
				Error string `json:"error"`
			}
			decodeResponse(t, resp, &body)
			require.Equal(t, tc.message, body.Error)
		})
	}

	// Only the oracle-failure case may reach the grader; the rest fail first.
	require.Equal(t, 1, grader.calls)

	var count int64
	require.NoError(t, db.Model(&models.CaseStudyAttempt{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestEvaluateEndpointRequiresAuthentication(t *testing.T) {
	grader := &scriptedGrader{}
	app, db := setupEvaluationApp(t, grader, "")
	caseStudy := seedEvaluationCaseStudy(t, db)

	resp := postEvaluate(t, app, dto.EvaluateRequest{CaseStudyID: caseStudy.ID, StudentAnswer: "risposta"})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	decodeResponse(t, resp, &body)
	require.Equal(t, "Non autorizzato", body.Error)
	require.Zero(t, grader.calls)
}
