package handlers

import (
	"bytes"
	"fmt"
	"time"

	"sweetshop/internal/ledger"
	"sweetshop/internal/models"
	"sweetshop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// LedgerHandler handles the earnings and expenses back-office.
type LedgerHandler struct {
	service  *services.LedgerService
	validate *validator.Validate
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(service *services.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the ledger routes; every one of them goes through admin.
func (h *LedgerHandler) RegisterRoutes(router fiber.Router, admin ...fiber.Handler) {
	ledgerRoutes := router.Group("/ledger")
	ledgerRoutes.Get("/", guarded(admin, h.HandleListTransactions)...)
	ledgerRoutes.Get("/summary", guarded(admin, h.HandleSummary)...)
	ledgerRoutes.Get("/export", guarded(admin, h.HandleExport)...)
	ledgerRoutes.Get("/:id", guarded(admin, h.HandleGetTransaction)...)
	ledgerRoutes.Post("/", guarded(admin, h.HandleCreateTransaction)...)
	ledgerRoutes.Put("/:id", guarded(admin, h.HandleUpdateTransaction)...)
	ledgerRoutes.Delete("/:id", guarded(admin, h.HandleDeleteTransaction)...)
}

// HandleListTransactions returns all ledger entries.
func (h *LedgerHandler) HandleListTransactions(c *fiber.Ctx) error {
	txns, err := h.service.ListTransactions(c.UserContext())
	if err != nil {
		return respondError(c, err, "Could not retrieve ledger")
	}
	return c.JSON(txns)
}

// HandleGetTransaction returns one ledger entry.
func (h *LedgerHandler) HandleGetTransaction(c *fiber.Ctx) error {
	txn, err := h.service.GetTransaction(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Ledger entry not found")
	}
	return c.JSON(txn)
}

// HandleCreateTransaction records a new earning or expense.
func (h *LedgerHandler) HandleCreateTransaction(c *fiber.Ctx) error {
	var draft models.TransactionDraft
	if err := bind(c, h.validate, &draft); err != nil {
		return rejectRequest(c, err)
	}
	txn, err := h.service.CreateTransaction(c.UserContext(), draft)
	if err != nil {
		return respondError(c, err, "Could not create ledger entry")
	}
	return c.Status(fiber.StatusCreated).JSON(txn)
}

// HandleUpdateTransaction replaces an existing entry.
func (h *LedgerHandler) HandleUpdateTransaction(c *fiber.Ctx) error {
	var draft models.TransactionDraft
	if err := bind(c, h.validate, &draft); err != nil {
		return rejectRequest(c, err)
	}
	txn, err := h.service.UpdateTransaction(c.UserContext(), c.Params("id"), draft)
	if err != nil {
		return respondError(c, err, "Could not update ledger entry")
	}
	return c.JSON(txn)
}

// HandleDeleteTransaction removes an entry.
func (h *LedgerHandler) HandleDeleteTransaction(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteTransaction(c.UserContext(), id); err != nil {
		return respondError(c, err, "Could not delete ledger entry")
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Ledger entry %s deleted successfully", id),
	})
}

func (h *LedgerHandler) parseFilter(c *fiber.Ctx) (ledger.Filter, error) {
	var f ledger.Filter
	if err := c.QueryParser(&f); err != nil {
		return f, &bodyError{err}
	}
	return f, h.validate.Struct(f)
}

// HandleSummary aggregates the entries matching the query filter.
func (h *LedgerHandler) HandleSummary(c *fiber.Ctx) error {
	f, err := h.parseFilter(c)
	if err != nil {
		return rejectRequest(c, err)
	}
	sum, err := h.service.Summary(c.UserContext(), f)
	if err != nil {
		return respondError(c, err, "Could not summarise ledger")
	}
	return c.JSON(sum)
}

// HandleExport downloads the filtered ledger as an XLSX workbook.
func (h *LedgerHandler) HandleExport(c *fiber.Ctx) error {
	f, err := h.parseFilter(c)
	if err != nil {
		return rejectRequest(c, err)
	}
	var buf bytes.Buffer
	if err := h.service.Export(c.UserContext(), &buf, f); err != nil {
		return respondError(c, err, "Could not export ledger")
	}
	c.Attachment(fmt.Sprintf("ledger-%s.xlsx", time.Now().Format("20060102")))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(buf.Bytes())
}
