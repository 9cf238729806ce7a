package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Company is the school's registration and contact record, shown in page
// headers and the CLI banner.
type Company struct {
	LegalName  string `json:"razao_social"`
	TradeName  string `json:"nome_fantasia"`
	CNPJ       string `json:"cnpj"`
	Street     string `json:"logradouro"`
	Number     string `json:"numero"`
	Complement string `json:"complemento"`
	CEP        string `json:"cep"`
	District   string `json:"bairro"`
	City       string `json:"municipio"`
	Region     string `json:"uf"`
	Email      string `json:"email"`
	Phone      string `json:"telefone"`
}

// fallbackCompany is served whenever the manager endpoint is unreachable or
// answers with an error envelope. Callers never see a failure for company
// info.
var fallbackCompany = Company{
	LegalName:  "UEMURA CENTRO DE TREINAMENTO ESPORTIVO LTDA",
	TradeName:  "DOJÔ UEMURA",
	CNPJ:       "59.002.265/0001-71",
	Street:     "Rod. Emanuel Pinheiro",
	Number:     "S/N",
	Complement: "KM 60",
	CEP:        "78195-000",
	District:   "Centro",
	City:       "Chapada dos Guimarães",
	Region:     "MT",
	Email:      "contato@dojouemura.com.br",
	Phone:      "(65) 98111-1125",
}

// CompanyInfo fetches the school's company record, falling back to the fixed
// built-in record on any transport or envelope failure.
func (c *Client) CompanyInfo(ctx context.Context) Company {
	company, err := c.fetchCompanyInfo(ctx)
	if err != nil {
		return fallbackCompany
	}
	return company
}

func (c *Client) fetchCompanyInfo(ctx context.Context) (Company, error) {
	url := c.baseURL + "/api/v1/manager/info/"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Company{}, fmt.Errorf("backend: build company request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Company{}, fmt.Errorf("backend: fetch company info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Company{}, fmt.Errorf("backend: company info status %d", resp.StatusCode)
	}

	var envelope struct {
		Success bool     `json:"success"`
		Data    *Company `json:"data"`
		Message string   `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return Company{}, fmt.Errorf("backend: decode company info: %w", err)
	}
	if !envelope.Success || envelope.Data == nil {
		return Company{}, fmt.Errorf("backend: company info rejected: %s", envelope.Message)
	}
	return *envelope.Data, nil
}
