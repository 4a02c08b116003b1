package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/smallbiznis/invoicedesk/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/invoicedesk/internal/invoice/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const viewCacheHeader = "X-View-Cache"

type invoiceListResponse struct {
	Invoices   []invoicedomain.InvoicesTable `json:"invoices"`
	TotalPages int                           `json:"total_pages"`
}

// ListInvoices serves the invoice list through the view cache; mutations
// revalidate it.
func (s *Server) ListInvoices(c *gin.Context) {
	var query listQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	ctx := c.Request.Context()
	key := query.cacheKey()
	body, gen, ok := s.views.Get(ctx, invoicedomain.InvoicesPath, key)
	if ok {
		c.Header(viewCacheHeader, "hit")
		c.Data(http.StatusOK, gin.MIMEJSON+"; charset=utf-8", body)
		return
	}

	var resp invoiceListResponse
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		resp.Invoices, err = s.invoiceSvc.FetchFilteredInvoices(gctx, query.term(), query.page())
		return err
	})
	g.Go(func() (err error) {
		resp.TotalPages, err = s.invoiceSvc.FetchInvoicesPages(gctx, query.term())
		return err
	})
	if err := g.Wait(); err != nil {
		AbortWithError(c, err)
		return
	}

	body, err := json.Marshal(resp)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.views.Set(ctx, invoicedomain.InvoicesPath, key, gen, body)

	c.Header(viewCacheHeader, "miss")
	c.Data(http.StatusOK, gin.MIMEJSON+"; charset=utf-8", body)
}

func (s *Server) GetCreateInvoiceForm(c *gin.Context) {
	customers, err := s.customerSvc.FetchCustomers(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (s *Server) GetEditInvoiceForm(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var (
		invoice   *invoicedomain.InvoiceEdit
		customers []customerdomain.CustomerField
	)
	g, gctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		invoice, err = s.invoiceSvc.FetchInvoiceByID(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		customers, err = s.customerSvc.FetchCustomers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		AbortWithError(c, err)
		return
	}
	if invoice == nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invoice": invoice, "customers": customers})
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var form invoicedomain.InvoiceForm
	if err := c.ShouldBind(&form); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	res, err := s.invoiceSvc.CreateInvoice(c.Request.Context(), form)
	s.respondAction(c, res, err)
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	var form invoicedomain.InvoiceForm
	if err := c.ShouldBind(&form); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	res, err := s.invoiceSvc.UpdateInvoice(c.Request.Context(), c.Param("id"), form)
	s.respondAction(c, res, err)
}

// DeleteInvoiceForm backs the list's delete button and always navigates back.
func (s *Server) DeleteInvoiceForm(c *gin.Context) {
	res, err := s.invoiceSvc.DeleteInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, res.RedirectTo)
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	res, err := s.invoiceSvc.DeleteInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// respondAction renders a form action outcome: the failure state for the
// form to display, or a redirect on success.
func (s *Server) respondAction(c *gin.Context, res invoicedomain.ActionResult, err error) {
	switch {
	case err != nil:
		_ = c.Error(err)
		message := err.Error()
		if res.State != nil && res.State.Message != "" {
			message = res.State.Message
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": message})
	case res.State != nil:
		c.JSON(http.StatusUnprocessableEntity, res.State)
	default:
		if res.RedirectTo == "" {
			s.log.Warn("action finished without a redirect target", zap.String("path", c.Request.URL.Path))
			res.RedirectTo = invoicedomain.InvoicesPath
		}
		c.Redirect(http.StatusSeeOther, res.RedirectTo)
	}
}
