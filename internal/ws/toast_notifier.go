package ws

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/lenstube-reports/internal/logger"
)

// EventToast - имя события всплывающего уведомления.
const EventToast = "toast"

const (
	ToastSuccess = "success"
	ToastError   = "error"
)

// Toast - полезная нагрузка события toast.
type Toast struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// ToastNotifier доставляет уведомления формы жалобы на подключения пользователя.
type ToastNotifier struct {
	hub    *Hub
	userID uuid.UUID
}

func NewToastNotifier(hub *Hub, userID uuid.UUID) *ToastNotifier {
	return &ToastNotifier{hub: hub, userID: userID}
}

func (n *ToastNotifier) Success(message string) {
	n.push(Toast{Level: ToastSuccess, Message: message})
}

func (n *ToastNotifier) Error(message string) {
	n.push(Toast{Level: ToastError, Message: message})
}

func (n *ToastNotifier) push(t Toast) {
	if !n.hub.Connected(n.userID) {
		logger.WithFields(logrus.Fields{
			"user_id": n.userID.String(),
			"level":   t.Level,
		}).Debug("ws: нет подключений, уведомление пропущено")
		return
	}
	if err := n.hub.BroadcastToUser(n.userID, EventToast, t); err != nil {
		logger.WithFields(logrus.Fields{
			"user_id": n.userID.String(),
			"level":   t.Level,
		}).WithError(err).Warn("ws: не удалось отправить уведомление")
	}
}
