package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/yung988/eliceli-salon/internal/domain/booking"
	"github.com/yung988/eliceli-salon/internal/httperr"
	"github.com/yung988/eliceli-salon/internal/httpresp"
)

type ClientHandler struct {
	repo domain.Repository
}

func NewClientHandler(repo domain.Repository) *ClientHandler {
	return &ClientHandler{repo: repo}
}

// List vrací klienty řazené podle jména, volitelně filtrované přes
// ?search= (jméno, e-mail nebo telefon).
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.repo.ListClients(c.Request.Context(), c.Query("search"))
	if err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Nepodařilo se načíst klienty.")
		return
	}
	httpresp.List(c, clients)
}
