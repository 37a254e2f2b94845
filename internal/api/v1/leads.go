package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/leadvine/leadvine/internal/domain"
	"github.com/leadvine/leadvine/internal/server/middleware"
)

type EmailInput struct {
	Value     string `json:"value" format:"email" doc:"Email address"`
	IsPrimary bool   `json:"is_primary,omitempty" doc:"Designates the contact's default address"`
}

type ContactInput struct {
	FirstName string       `json:"first_name,omitempty" maxLength:"200" doc:"Contact first name"`
	LastName  string       `json:"last_name,omitempty" maxLength:"200" doc:"Contact last name"`
	Emails    []EmailInput `json:"emails,omitempty" doc:"Contact email addresses, in order"`
}

type CreateLeadInput struct {
	Body struct {
		Name           string        `json:"name" minLength:"1" maxLength:"500" doc:"Lead name"`
		Domain         string        `json:"domain,omitempty" maxLength:"253" doc:"Company domain"`
		Status         string        `json:"status,omitempty" enum:"new,qualified,lost" doc:"Initial status (defaults to new)"`
		CompanySize    *int          `json:"company_size,omitempty" minimum:"1" doc:"Employee count"`
		Industry       string        `json:"industry,omitempty" maxLength:"200" doc:"Industry name"`
		LastContacted  *time.Time    `json:"last_contacted,omitempty" doc:"When the lead was last contacted"`
		PrimaryContact *ContactInput `json:"primary_contact,omitempty" doc:"Optional primary contact created with the lead"`
	}
}

type CreateLeadOutput struct {
	Body *domain.Lead
}

type ListLeadsInput struct {
	Query  string `query:"q" doc:"Case-insensitive substring match on name or domain"`
	Status string `query:"status" enum:"new,qualified,lost" doc:"Filter by status"`
	Limit  int    `query:"limit" default:"20" minimum:"1" maximum:"200" doc:"Page size"`
	Offset int    `query:"offset" minimum:"0" doc:"Rows to skip"`
}

type LeadPage struct {
	Items []*domain.Lead `json:"items"`
	Total int            `json:"total" doc:"Count of all matching leads before pagination"`
}

type ListLeadsOutput struct {
	Body LeadPage
}

type UpdateLeadStatusInput struct {
	ID   uuid.UUID `path:"id" doc:"Lead ID"`
	Body struct {
		Status string `json:"status" enum:"new,qualified,lost" doc:"Target status"`
	}
}

type UpdateLeadStatusOutput struct {
	Body *domain.Lead
}

func RegisterLeadRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-lead",
		Method:        http.MethodPost,
		Path:          "/leads",
		Summary:       "Create a new lead",
		Tags:          []string{"Leads"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateLeadInput) (*CreateLeadOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		status := domain.LeadStatusNew
		if input.Body.Status != "" {
			status = domain.LeadStatus(input.Body.Status)
		}

		now := time.Now().UTC()
		l := &domain.Lead{
			ID:            uuid.New(),
			TenantID:      tenantID,
			Name:          input.Body.Name,
			Domain:        input.Body.Domain,
			Status:        status,
			CompanySize:   input.Body.CompanySize,
			Industry:      input.Body.Industry,
			LastContacted: input.Body.LastContacted,
			CreatedAt:     now,
		}

		if pc := input.Body.PrimaryContact; pc != nil {
			seeds := make([]domain.EmailSeed, 0, len(pc.Emails))
			for _, e := range pc.Emails {
				seeds = append(seeds, domain.EmailSeed{Value: e.Value, IsPrimary: e.IsPrimary})
			}

			contact, err := domain.NewContact(tenantID, pc.FirstName, pc.LastName, seeds)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidInput) {
					return nil, huma.Error400BadRequest(err.Error())
				}
				return nil, huma.Error500InternalServerError("failed to build contact", err)
			}

			l.PrimaryContact = contact
			l.PrimaryContactID = &contact.ID
		}

		// Priority is derived from the fully populated lead, including
		// whether a primary contact is attached.
		l.Priority = domain.CalculatePriority(l, now)

		if err := store.Leads().Create(ctx, l); err != nil {
			return nil, huma.Error500InternalServerError("failed to create lead", err)
		}

		middleware.RecordLeadCreated()

		return &CreateLeadOutput{Body: l}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-leads",
		Method:      http.MethodGet,
		Path:        "/leads",
		Summary:     "List leads ranked by priority",
		Tags:        []string{"Leads"},
	}, func(ctx context.Context, input *ListLeadsInput) (*ListLeadsOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		leads, total, err := store.Leads().List(ctx, tenantID, domain.LeadFilter{
			Query:  input.Query,
			Status: domain.LeadStatus(input.Status),
			Limit:  input.Limit,
			Offset: input.Offset,
		})
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list leads", err)
		}

		if leads == nil {
			leads = []*domain.Lead{}
		}

		return &ListLeadsOutput{Body: LeadPage{Items: leads, Total: total}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-lead-status",
		Method:      http.MethodPost,
		Path:        "/leads/{id}/status",
		Summary:     "Update a lead's status",
		Tags:        []string{"Leads"},
	}, func(ctx context.Context, input *UpdateLeadStatusInput) (*UpdateLeadStatusOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		l, err := store.Leads().UpdateStatus(ctx, tenantID, input.ID, domain.LeadStatus(input.Body.Status))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("lead not found")
			}
			return nil, huma.Error500InternalServerError("failed to update lead status", err)
		}

		middleware.RecordLeadStatusTransition(input.Body.Status)

		return &UpdateLeadStatusOutput{Body: l}, nil
	})
}
