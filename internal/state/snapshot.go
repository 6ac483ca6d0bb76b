package state

import (
	"github.com/google/uuid"

	"docboard/internal/domain"
	"docboard/internal/validation"
)

// Snapshot is the full application state at one point in time. The store
// owns the only authoritative copy; values returned to callers are deep
// copies, so holding one never observes later mutations.
type Snapshot struct {
	Organizations    []domain.Organization     `json:"organizations"`
	OrganizationUUID uuid.UUID                 `json:"organization_uuid"`
	ActiveTab        domain.Tab                `json:"active_tab"`
	ActivePanel      domain.SidebarPanel       `json:"active_panel"`
	ActiveDashboard  uuid.UUID                 `json:"active_dashboard"`
	ActiveDocumentID uuid.UUID                 `json:"active_document_id"`
	DashboardList    []domain.DashboardProject `json:"dashboard_list"`
	DocumentTypes    []domain.DocumentType     `json:"document_types"`
	Applications     []domain.Application      `json:"applications"`
	ReviewQueue      []domain.ReviewDocument   `json:"review_queue"`
}

// Patch is a partial state update: nil fields are left untouched, non-nil
// fields replace the corresponding snapshot slice or value wholesale.
type Patch struct {
	Organizations    *[]domain.Organization
	OrganizationUUID *uuid.UUID
	ActiveTab        *domain.Tab
	ActivePanel      *domain.SidebarPanel
	ActiveDashboard  *uuid.UUID
	ActiveDocumentID *uuid.UUID
	DashboardList    *[]domain.DashboardProject
	DocumentTypes    *[]domain.DocumentType
	Applications     *[]domain.Application
	ReviewQueue      *[]domain.ReviewDocument
}

// touchesEntities reports whether the patch writes any entity collection,
// which is what routes a commit through full entity validation. Pure
// view-state fields are only checked against their closed enums.
func (p *Patch) touchesEntities() bool {
	return p.Organizations != nil || p.DashboardList != nil ||
		p.DocumentTypes != nil || p.Applications != nil || p.ReviewQueue != nil
}

// apply merges the patch into a snapshot copy.
func (p *Patch) apply(s Snapshot) Snapshot {
	if p.Organizations != nil {
		s.Organizations = *p.Organizations
	}
	if p.OrganizationUUID != nil {
		s.OrganizationUUID = *p.OrganizationUUID
	}
	if p.ActiveTab != nil {
		s.ActiveTab = *p.ActiveTab
	}
	if p.ActivePanel != nil {
		s.ActivePanel = *p.ActivePanel
	}
	if p.ActiveDashboard != nil {
		s.ActiveDashboard = *p.ActiveDashboard
	}
	if p.ActiveDocumentID != nil {
		s.ActiveDocumentID = *p.ActiveDocumentID
	}
	if p.DashboardList != nil {
		s.DashboardList = *p.DashboardList
	}
	if p.DocumentTypes != nil {
		s.DocumentTypes = *p.DocumentTypes
	}
	if p.Applications != nil {
		s.Applications = *p.Applications
	}
	if p.ReviewQueue != nil {
		s.ReviewQueue = *p.ReviewQueue
	}
	return s
}

// validateSnapshot checks the reconstructed post-merge snapshot. View-state
// enums are always checked against their closed sets; entity collections go
// through the validation package only when the patch touched them.
func validateSnapshot(s *Snapshot, entities bool) *validation.Error {
	var all []validation.FieldError

	if s.ActiveTab != "" && !domain.KnownTabs[s.ActiveTab] {
		all = append(all, validation.FieldError{Path: "active_tab", Message: "unknown tab " + string(s.ActiveTab)})
	}
	if !domain.KnownPanels[s.ActivePanel] {
		all = append(all, validation.FieldError{Path: "active_panel", Message: "unknown panel " + string(s.ActivePanel)})
	}
	if !entities {
		if len(all) > 0 {
			return &validation.Error{Fields: all}
		}
		return nil
	}

	for i := range s.Organizations {
		if err := validation.Organization(&s.Organizations[i]); err != nil {
			all = append(all, err.Fields...)
		}
	}
	if err := validation.Dashboards(s.DashboardList); err != nil {
		all = append(all, err.Fields...)
	}
	if err := validation.DocumentTypeRegistry(s.DocumentTypes); err != nil {
		all = append(all, err.Fields...)
	}
	for i := range s.Applications {
		if err := validation.Application(&s.Applications[i]); err != nil {
			all = append(all, err.Fields...)
		}
	}

	seenDocs := make(map[uuid.UUID]bool, len(s.ReviewQueue))
	for i, d := range s.ReviewQueue {
		if seenDocs[d.ID] {
			all = append(all, validation.FieldError{
				Path:    "review_queue[" + itoa(i) + "].id",
				Message: "duplicate review document id " + d.ID.String(),
			})
		}
		seenDocs[d.ID] = true
	}

	if len(all) > 0 {
		return &validation.Error{Fields: all}
	}
	return nil
}

// normalize enforces the current-organization invariant: when the list is
// non-empty, the current uuid must point at a listed organization, defaulting
// to the first fetched.
func normalize(s *Snapshot) {
	if len(s.Organizations) == 0 {
		s.OrganizationUUID = uuid.Nil
		return
	}
	for _, org := range s.Organizations {
		if org.UUID == s.OrganizationUUID {
			return
		}
	}
	s.OrganizationUUID = s.Organizations[0].UUID
}

func itoa(n int) string {
	// small positive indexes only
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// clone deep-copies a snapshot.
func clone(s Snapshot) Snapshot {
	out := s
	out.Organizations = cloneOrganizations(s.Organizations)
	out.DashboardList = cloneDashboards(s.DashboardList)
	out.DocumentTypes = cloneDocumentTypes(s.DocumentTypes)
	out.Applications = cloneApplications(s.Applications)
	out.ReviewQueue = cloneReviewQueue(s.ReviewQueue)
	return out
}

func cloneOrganizations(orgs []domain.Organization) []domain.Organization {
	if orgs == nil {
		return nil
	}
	out := make([]domain.Organization, len(orgs))
	for i, o := range orgs {
		c := o
		c.Categories = append([]string(nil), o.Categories...)
		if o.Steps != nil {
			c.Steps = make(map[domain.DocTypeKey][]domain.FileMetadataStep, len(o.Steps))
			for k, steps := range o.Steps {
				cs := make([]domain.FileMetadataStep, len(steps))
				for j, st := range steps {
					cst := st
					if st.StepFields != nil {
						cst.StepFields = make(map[string]string, len(st.StepFields))
						for fk, fv := range st.StepFields {
							cst.StepFields[fk] = fv
						}
					}
					cst.ChatMessages = cloneMessages(st.ChatMessages)
					cs[j] = cst
				}
				c.Steps[k] = cs
			}
		}
		out[i] = c
	}
	return out
}

func cloneMessages(msgs []domain.Message) []domain.Message {
	if msgs == nil {
		return nil
	}
	out := make([]domain.Message, len(msgs))
	for i, m := range msgs {
		c := m
		c.Statuses = append([]domain.MessageStatus(nil), m.Statuses...)
		out[i] = c
	}
	return out
}

func cloneDashboards(list []domain.DashboardProject) []domain.DashboardProject {
	if list == nil {
		return nil
	}
	out := make([]domain.DashboardProject, len(list))
	for i, p := range list {
		c := p
		c.Items = make([]domain.DashboardItem, len(p.Items))
		for j, item := range p.Items {
			ci := item
			if item.ChartConfig != nil {
				ci.ChartConfig = make(map[string]string, len(item.ChartConfig))
				for k, v := range item.ChartConfig {
					ci.ChartConfig[k] = v
				}
			}
			ci.Data = append([]domain.DataPoint(nil), item.Data...)
			c.Items[j] = ci
		}
		out[i] = c
	}
	return out
}

func cloneDocumentTypes(types []domain.DocumentType) []domain.DocumentType {
	if types == nil {
		return nil
	}
	out := make([]domain.DocumentType, len(types))
	for i, dt := range types {
		c := dt
		c.Schema.Fields = append([]domain.SchemaField(nil), dt.Schema.Fields...)
		out[i] = c
	}
	return out
}

func cloneApplications(apps []domain.Application) []domain.Application {
	if apps == nil {
		return nil
	}
	out := make([]domain.Application, len(apps))
	for i, a := range apps {
		c := a
		c.DocumentTypesID = append([]string(nil), a.DocumentTypesID...)
		c.ValidationRules = append([]domain.ValidationRule(nil), a.ValidationRules...)
		out[i] = c
	}
	return out
}

func cloneReviewQueue(queue []domain.ReviewDocument) []domain.ReviewDocument {
	if queue == nil {
		return nil
	}
	out := make([]domain.ReviewDocument, len(queue))
	for i, d := range queue {
		c := d
		c.ExtractedData = append([]domain.ExtractedField(nil), d.ExtractedData...)
		if d.ReviewedAt != nil {
			t := *d.ReviewedAt
			c.ReviewedAt = &t
		}
		out[i] = c
	}
	return out
}
