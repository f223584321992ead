package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"report-web-server/internal/model/requestresponse"
	"report-web-server/internal/ports"
	"report-web-server/internal/util"
)

type EmailHandler struct {
	mailSender ports.MailSender
}

func NewEmailHandler(mailSender ports.MailSender) *EmailHandler {
	return &EmailHandler{mailSender}
}

// SendTestEmail godoc
// @Summary Отправка тестового письма
// @Description Проверка конфигурации SMTP: отправляет текстовое или HTML-письмо.
// @Tags Email
// @Accept json
// @Produce json
// @Param body body requestresponse.SendEmailRequest true "Параметры письма"
// @Success 200 {object} requestresponse.SendEmailResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/email/test [post]
func (h *EmailHandler) SendTestEmail(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.SendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	if len(req.To) == 0 || req.Subject == "" {
		util.HandleError(w, "to и subject обязательны", http.StatusBadRequest)
		return
	}

	var err error
	if req.HTML != "" {
		err = h.mailSender.SendHTMLEmail(req.To, req.Subject, req.HTML)
	} else {
		err = h.mailSender.SendTextEmail(req.To, req.Subject, req.Text)
	}
	if err != nil {
		log.Println(err)
		util.HandleError(w, "не удалось отправить письмо", http.StatusInternalServerError)
		return
	}

	resp := requestresponse.SendEmailResponse{
		Success: true,
		Message: "письмо успешно отправлено",
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
