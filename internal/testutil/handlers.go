package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/Naitik-Lodhi/invoice-web-application-sub000/internal/api"
)

// --- auth ----------------------------------------------------------------

func (s *Server) signup(c *fiber.Ctx) error {
	var in api.SignupInput
	if err := c.BodyParser(&in); err != nil {
		return apiError(c, fiber.StatusBadRequest, api.CodeValidation, "invalid json")
	}
	if in.Name == "" || in.Email == "" || len(in.Password) < 6 {
		return apiError(c, fiber.StatusBadRequest, api.CodeValidation, "name, email and a 6+ char password are required")
	}

	key := strings.ToLower(in.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[key]; exists {
		return apiError(c, fiber.StatusConflict, api.CodeDuplicate, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.MinCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "", "hash failure")
	}
	u := user{name: in.Name, email: in.Email, passwordHash: hash}
	s.users[key] = u

	return s.authResponse(c, fiber.StatusCreated, u)
}

func (s *Server) login(c *fiber.Ctx) error {
	var in api.LoginInput
	if err := c.BodyParser(&in); err != nil {
		return apiError(c, fiber.StatusBadRequest, api.CodeValidation, "invalid json")
	}

	s.mu.Lock()
	u, ok := s.users[strings.ToLower(in.Email)]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(u.passwordHash, []byte(in.Password)) != nil {
		return apiError(c, fiber.StatusUnauthorized, "", "invalid credentials")
	}

	return s.authResponse(c, fiber.StatusOK, u)
}

func (s *Server) authResponse(c *fiber.Ctx, status int, u user) error {
	token, expiresIn, err := s.issueToken(u)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "", "token failure")
	}
	return c.Status(status).JSON(api.AuthResult{
		AccessToken: token,
		ExpiresIn:   expiresIn,
		UserName:    u.name,
		Email:       u.email,
	})
}

// --- multipart helpers ---------------------------------------------------

// imagePart decodes the "payload" JSON part and resolves the three-way
// image disposition. data is nil unless the action is "replace".
func imagePart(c *fiber.Ctx, doc any) (action string, data []byte, err error) {
	payload := c.FormValue("payload")
	if payload == "" {
		return "", nil, fmt.Errorf("missing payload part")
	}
	if err := json.Unmarshal([]byte(payload), doc); err != nil {
		return "", nil, err
	}

	action = c.FormValue("imageAction")
	if action == "" {
		action = "keep"
	}
	if action == "replace" {
		fh, err := c.FormFile("image")
		if err != nil {
			return "", nil, fmt.Errorf("imageAction=replace without an image part")
		}
		f, err := fh.Open()
		if err != nil {
			return "", nil, err
		}
		defer f.Close()
		data, err = io.ReadAll(f)
		if err != nil {
			return "", nil, err
		}
	}
	return action, data, nil
}

// --- company -------------------------------------------------------------

func (s *Server) getCompany(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(s.company)
}

func (s *Server) updateCompany(c *fiber.Ctx) error {
	var in api.Company
	action, data, err := imagePart(c, &in)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, api.CodeValidation, err.Error())
	}
	if in.Name == "" {
		return apiError(c, fiber.StatusBadRequest, api.CodeValidation, "company name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch action {
	case "replace":
		s.logo = data
	case "remove":
		s.logo = nil
	}
	in.LogoURL = nil
	if s.logo != nil {
		u := "/api/company/logo"
		in.LogoURL = &u
	}
	s.company = in
	return c.JSON(s.company)
}

func (s *Server) getLogo(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.logo == nil {
		return apiError(c, fiber.StatusNotFound, "", "no logo")
	}
	return c.Send(s.logo)
}

// --- items ---------------------------------------------------------------

func (s *Server) listItems(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]api.Item, 0, len(s.items))
	for _, it := range s.items {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return c.JSON(fiber.Map{"items": items})
}

func (s *Server) createItem(c *fiber.Ctx) error {
	var in api.ItemInput
	action, data, err := imagePart(c, &in)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, api.CodeValidation, err.Error())
	}
	if in.Name == "" {
		return apiError(c, fiber.StatusBadRequest, api.CodeValidation, "item name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if strings.EqualFold(it.Name, in.Name) {
			return apiError(c, fiber.StatusConflict, api.CodeDuplicate, "item name already exists")
		}
	}

	it := api.Item{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Rate:        in.Rate,
		DiscountPct: in.DiscountPct,
	}
	if action == "replace" {
		s.pictures[it.ID] = data
		u := "/api/items/" + it.ID + "/picture"
		it.PictureURL = &u
	}
	s.items[it.ID] = it
	return c.Status(fiber.StatusCreated).JSON(it)
}

func (s *Server) updateItem(c *fiber.Ctx) error {
	var in api.ItemInput
	action, data, err := imagePart(c, &in)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, api.CodeValidation, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Params("id")
	it, ok := s.items[id]
	if !ok {
		return apiError(c, fiber.StatusNotFound, "", "item not found")
	}
	for otherID, other := range s.items {
		if otherID != id && strings.EqualFold(other.Name, in.Name) {
			return apiError(c, fiber.StatusConflict, api.CodeDuplicate, "item name already exists")
		}
	}

	it.Name = in.Name
	it.Description = in.Description
	it.Rate = in.Rate
	it.DiscountPct = in.DiscountPct
	switch action {
	case "replace":
		s.pictures[id] = data
		u := "/api/items/" + id + "/picture"
		it.PictureURL = &u
	case "remove":
		delete(s.pictures, id)
		it.PictureURL = nil
	}
	s.items[id] = it
	return c.JSON(it)
}

func (s *Server) deleteItem(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Params("id")
	if _, ok := s.items[id]; !ok {
		return apiError(c, fiber.StatusNotFound, "", "item not found")
	}
	delete(s.items, id)
	delete(s.pictures, id)
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) getPicture(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.pictures[c.Params("id")]
	if !ok {
		return apiError(c, fiber.StatusNotFound, "", "no picture")
	}
	return c.Send(data)
}

// --- invoices ------------------------------------------------------------

func (s *Server) listInvoices(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.InvoiceSummary, 0, len(s.invoices))
	for _, inv := range s.invoices {
		out = append(out, api.InvoiceSummary{
			InvoiceID:     inv.InvoiceID,
			InvoiceNo:     inv.InvoiceNo,
			InvoiceDate:   inv.InvoiceDate,
			CustomerName:  inv.CustomerName,
			SubTotal:      inv.SubTotal,
			TaxAmount:     inv.TaxAmount,
			InvoiceAmount: inv.InvoiceAmount,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvoiceNo < out[j].InvoiceNo })
	return c.JSON(fiber.Map{"invoices": out})
}

func (s *Server) nextInvoiceNo(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	highest := 0
	for _, inv := range s.invoices {
		var n int
		if _, err := fmt.Sscanf(inv.InvoiceNo, "INV-%d", &n); err == nil && n > highest {
			highest = n
		}
	}
	return c.JSON(fiber.Map{"invoiceNo": fmt.Sprintf("INV-%04d", highest+1)})
}

func (s *Server) getInvoice(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invoices[c.Params("id")]
	if !ok {
		return apiError(c, fiber.StatusNotFound, "", "invoice not found")
	}
	return c.JSON(inv)
}

func (s *Server) createInvoice(c *fiber.Ctx) error {
	var in api.Invoice
	if err := c.BodyParser(&in); err != nil {
		return apiError(c, fiber.StatusBadRequest, api.CodeValidation, "invalid json")
	}
	if in.InvoiceNo == "" || in.CustomerName == "" {
		return apiError(c, fiber.StatusBadRequest, api.CodeValidation, "invoiceNo and customerName are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.invoices {
		if other.InvoiceNo == in.InvoiceNo {
			return apiError(c, fiber.StatusConflict, api.CodeDuplicate, "invoice number already exists")
		}
	}

	in.InvoiceID = uuid.NewString()
	tok := uuid.NewString()
	in.UpdatedOn = &tok
	s.invoices[in.InvoiceID] = in
	return c.Status(fiber.StatusCreated).JSON(in)
}

func (s *Server) updateInvoice(c *fiber.Ctx) error {
	var in api.Invoice
	if err := c.BodyParser(&in); err != nil {
		return apiError(c, fiber.StatusBadRequest, api.CodeValidation, "invalid json")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Params("id")
	cur, ok := s.invoices[id]
	if !ok {
		return apiError(c, fiber.StatusNotFound, "", "invoice not found")
	}
	if in.UpdatedOn == nil || cur.UpdatedOn == nil || *in.UpdatedOn != *cur.UpdatedOn {
		return apiError(c, fiber.StatusConflict, api.CodeVersionMismatch, "invoice was modified by another session")
	}
	for otherID, other := range s.invoices {
		if otherID != id && other.InvoiceNo == in.InvoiceNo {
			return apiError(c, fiber.StatusConflict, api.CodeDuplicate, "invoice number already exists")
		}
	}

	in.InvoiceID = id
	tok := uuid.NewString()
	in.UpdatedOn = &tok
	s.invoices[id] = in
	return c.JSON(in)
}

func (s *Server) deleteInvoice(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Params("id")
	if _, ok := s.invoices[id]; !ok {
		return apiError(c, fiber.StatusNotFound, "", "invoice not found")
	}
	delete(s.invoices, id)
	return c.SendStatus(fiber.StatusNoContent)
}

// --- dashboard -----------------------------------------------------------

func (s *Server) metrics(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, inv := range s.invoices {
		total = total.Add(inv.InvoiceAmount)
	}
	avg := decimal.Zero
	if len(s.invoices) > 0 {
		avg = total.Div(decimal.NewFromInt(int64(len(s.invoices)))).Round(2)
	}
	return c.JSON(api.Metrics{
		InvoiceCount: len(s.invoices),
		ItemCount:    len(s.items),
		TotalBilled:  total,
		AverageBill:  avg,
	})
}

func (s *Server) trend(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byMonth := map[string]decimal.Decimal{}
	for _, inv := range s.invoices {
		if len(inv.InvoiceDate) < 7 {
			continue
		}
		m := inv.InvoiceDate[:7]
		byMonth[m] = byMonth[m].Add(inv.InvoiceAmount)
	}

	out := make([]api.TrendPoint, 0, len(byMonth))
	for m, total := range byMonth {
		out = append(out, api.TrendPoint{Month: m, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return c.JSON(fiber.Map{"trend": out})
}

func (s *Server) topItems(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "5"))
	if err != nil || limit <= 0 {
		limit = 5
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	type agg struct {
		name   string
		billed decimal.Decimal
	}
	byItem := map[string]agg{}
	for _, inv := range s.invoices {
		for _, ln := range inv.LineItems {
			if ln.ItemID == "" {
				continue
			}
			a := byItem[ln.ItemID]
			a.name = ln.ItemName
			a.billed = a.billed.Add(ln.Amount)
			byItem[ln.ItemID] = a
		}
	}

	out := make([]api.TopItem, 0, len(byItem))
	for id, a := range byItem {
		out = append(out, api.TopItem{ItemID: id, ItemName: a.name, Billed: a.billed})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Billed.GreaterThan(out[j].Billed) })
	if len(out) > limit {
		out = out[:limit]
	}
	return c.JSON(fiber.Map{"items": out})
}
