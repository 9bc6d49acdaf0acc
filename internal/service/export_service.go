package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/advisio/crm-console/internal/csvexport"
	"github.com/advisio/crm-console/internal/listing"
	"github.com/advisio/crm-console/internal/model"
)

// WorkbookGenerator renders the contract book as a spreadsheet workbook.
type WorkbookGenerator interface {
	Generate(rows []listing.ContractRow) ([]byte, error)
}

// SheetGenerator renders a single contract as a printable document.
type SheetGenerator interface {
	Generate(row listing.ContractRow) ([]byte, error)
}

type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

type ExportService struct {
	contracts ContractStore
	clients   ClientStore
	advisors  AdvisorStore
	workbook  WorkbookGenerator
	sheet     SheetGenerator
}

func NewExportService(contracts ContractStore, clients ClientStore, advisors AdvisorStore, workbook WorkbookGenerator, sheet SheetGenerator) *ExportService {
	return &ExportService{
		contracts: contracts,
		clients:   clients,
		advisors:  advisors,
		workbook:  workbook,
		sheet:     sheet,
	}
}

var contractFields = []csvexport.Field{
	{Key: "registrationNumber", Label: "Registration Number"},
	{Key: "institution", Label: "Institution"},
	{Key: "clientId", Label: "Client ID"},
	{Key: "clientName", Label: "Client Name"},
	{Key: "administratorId", Label: "Administrator ID"},
	{Key: "administratorName", Label: "Administrator Name"},
	{Key: "validityDate", Label: "Validity Date"},
	{Key: "conclusionDate", Label: "Conclusion Date"},
	{Key: "endingDate", Label: "Ending Date"},
}

var clientFields = []csvexport.Field{
	{Key: "name", Label: "First Name"},
	{Key: "surname", Label: "Surname"},
	{Key: "email", Label: "Email"},
	{Key: "phone", Label: "Phone"},
	{Key: "age", Label: "Age"},
}

var advisorFields = []csvexport.Field{
	{Key: "name", Label: "First Name"},
	{Key: "surname", Label: "Surname"},
	{Key: "email", Label: "Email"},
	{Key: "phone", Label: "Phone"},
	{Key: "isAdmin", Label: "Is Admin"},
}

// ContractsCSV exports the contract book, honoring the active list filter
// so the file matches what the operator sees.
func (s *ExportService) ContractsCSV(ctx context.Context, filter listing.ContractFilter) (*ExportResult, error) {
	rows, err := s.contractRows(ctx, filter)
	if err != nil {
		return nil, err
	}
	csv := csvexport.Marshal(contractRecords(rows), contractFields)
	return csvResult("contracts.csv", csv), nil
}

func (s *ExportService) ClientsCSV(ctx context.Context) (*ExportResult, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	csv := csvexport.Marshal(clientRecords(clients), clientFields)
	return csvResult("clients.csv", csv), nil
}

func (s *ExportService) AdvisorsCSV(ctx context.Context) (*ExportResult, error) {
	advisors, err := s.advisors.List(ctx)
	if err != nil {
		return nil, err
	}
	csv := csvexport.Marshal(advisorRecords(advisors), advisorFields)
	return csvResult("advisors.csv", csv), nil
}

// AllCSV combines the three collections into one file, each block labelled
// and independently valid.
func (s *ExportService) AllCSV(ctx context.Context) (*ExportResult, error) {
	rows, err := s.contractRows(ctx, listing.ContractFilter{})
	if err != nil {
		return nil, err
	}
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	advisors, err := s.advisors.List(ctx)
	if err != nil {
		return nil, err
	}

	combined := csvexport.Combine([]csvexport.Section{
		{Label: "Contracts", CSV: csvexport.Marshal(contractRecords(rows), contractFields)},
		{Label: "Clients", CSV: csvexport.Marshal(clientRecords(clients), clientFields)},
		{Label: "Advisors", CSV: csvexport.Marshal(advisorRecords(advisors), advisorFields)},
	})
	return csvResult("all_crm_data.csv", combined), nil
}

func (s *ExportService) ContractsWorkbook(ctx context.Context) (*ExportResult, error) {
	rows, err := s.contractRows(ctx, listing.ContractFilter{})
	if err != nil {
		return nil, err
	}
	content, err := s.workbook.Generate(rows)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName:    "contracts.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     content,
	}, nil
}

func (s *ExportService) ContractPDF(ctx context.Context, id uuid.UUID) (*ExportResult, error) {
	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	dir, err := s.directory(ctx)
	if err != nil {
		return nil, err
	}
	row := listing.BuildContractRows([]model.Contract{*contract}, dir)[0]

	content, err := s.sheet.Generate(row)
	if err != nil {
		return nil, err
	}
	name := sanitizeFileName(row.RegistrationNumber)
	if name == "" {
		name = row.ID.String()
	}
	return &ExportResult{
		FileName:    "contract-" + name + ".pdf",
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

func (s *ExportService) contractRows(ctx context.Context, filter listing.ContractFilter) ([]listing.ContractRow, error) {
	contracts, err := s.contracts.List(ctx)
	if err != nil {
		return nil, err
	}
	dir, err := s.directory(ctx)
	if err != nil {
		return nil, err
	}
	filtered := listing.FilterContracts(contracts, dir, filter)
	return listing.BuildContractRows(filtered, dir), nil
}

func (s *ExportService) directory(ctx context.Context) (*listing.Directory, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	advisors, err := s.advisors.List(ctx)
	if err != nil {
		return nil, err
	}
	relations, err := s.contracts.ListRelations(ctx)
	if err != nil {
		return nil, err
	}
	return listing.NewDirectory(clients, advisors, relations), nil
}

func csvResult(fileName, csv string) *ExportResult {
	return &ExportResult{
		FileName:    fileName,
		ContentType: "text/csv; charset=utf-8",
		Content:     csvexport.Payload(csv),
	}
}

func contractRecords(rows []listing.ContractRow) []csvexport.Record {
	records := make([]csvexport.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, csvexport.Record{
			"registrationNumber": row.RegistrationNumber,
			"institution":        string(row.Institution),
			"clientId":           row.ClientID.String(),
			"clientName":         row.ClientName,
			"administratorId":    row.AdministratorID.String(),
			"administratorName":  row.AdministratorName,
			"validityDate":       row.ValidityDate.Format(dateLayout),
			"conclusionDate":     row.ConclusionDate.Format(dateLayout),
			"endingDate":         row.EndingDate.Format(dateLayout),
		})
	}
	return records
}

func clientRecords(clients []model.Client) []csvexport.Record {
	records := make([]csvexport.Record, 0, len(clients))
	for _, c := range clients {
		records = append(records, csvexport.Record{
			"name":    c.Name,
			"surname": c.Surname,
			"email":   c.Email,
			"phone":   c.Phone,
			"age":     c.Age,
		})
	}
	return records
}

func advisorRecords(advisors []model.Advisor) []csvexport.Record {
	records := make([]csvexport.Record, 0, len(advisors))
	for _, a := range advisors {
		records = append(records, csvexport.Record{
			"name":    a.Name,
			"surname": a.Surname,
			"email":   a.Email,
			"phone":   a.Phone,
			"isAdmin": a.IsAdmin,
		})
	}
	return records
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
