package domain

import (
	"sort"
	"strings"
)

// Catalog is the set of resources the console knows how to view and edit.
type Catalog struct {
	resources []Resource
	byName    map[string]int
}

// NewCatalog indexes resources by lower-cased name. Later duplicates win.
func NewCatalog(resources ...Resource) *Catalog {
	c := &Catalog{
		resources: make([]Resource, 0, len(resources)),
		byName:    make(map[string]int, len(resources)),
	}
	for _, r := range resources {
		key := strings.ToLower(r.Name)
		if i, ok := c.byName[key]; ok {
			c.resources[i] = r
			continue
		}
		c.byName[key] = len(c.resources)
		c.resources = append(c.resources, r)
	}
	return c
}

// Lookup finds a resource by name, case-insensitively.
func (c *Catalog) Lookup(name string) (Resource, error) {
	if c == nil {
		return Resource{}, ErrUnknownResource
	}
	i, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Resource{}, &OpError{
			Op:   "catalog.lookup",
			Kind: KindNotFound,
			Path: name,
			Err:  ErrUnknownResource,
		}
	}
	return c.resources[i], nil
}

// All returns resources in catalog order.
func (c *Catalog) All() []Resource {
	if c == nil {
		return nil
	}
	out := make([]Resource, len(c.resources))
	copy(out, c.resources)
	return out
}

// ByDomain returns the resources under one API domain.
func (c *Catalog) ByDomain(d APIDomain) []Resource {
	var out []Resource
	for _, r := range c.All() {
		if r.Domain == d {
			out = append(out, r)
		}
	}
	return out
}

// Domains lists the API domains present, sorted.
func (c *Catalog) Domains() []APIDomain {
	seen := map[APIDomain]bool{}
	var out []APIDomain
	for _, r := range c.All() {
		if !seen[r.Domain] {
			seen[r.Domain] = true
			out = append(out, r.Domain)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Auth resources are used directly by the auth use case.
var (
	ResourceLogin = Resource{
		Name:       "auth.login",
		Domain:     DomainAuth,
		Title:      "Login",
		CreatePath: "/auth/login",
		Fields: []Field{
			{Name: "email", Label: "Email", Kind: FieldEmail, Required: true},
			{Name: "password", Label: "Password", Kind: FieldPassword, Required: true},
		},
	}

	ResourceRegister = Resource{
		Name:       "auth.register",
		Domain:     DomainAuth,
		Title:      "Register",
		CreatePath: "/auth/register",
		Fields: []Field{
			{Name: "full_name", Label: "Full name", Kind: FieldText, Required: true},
			{Name: "email", Label: "Email", Kind: FieldEmail, Required: true},
			{Name: "password", Label: "Password", Kind: FieldPassword, Required: true},
			{Name: "date_of_birth", Label: "Date of birth", Kind: FieldDate, Required: true},
			{Name: "address_line1", Label: "Address", Kind: FieldText},
			{Name: "city", Label: "City", Kind: FieldText},
			{Name: "state_province", Label: "State/Province", Kind: FieldText},
			{Name: "postal_code", Label: "Postal code", Kind: FieldText},
			{Name: "country", Label: "Country", Kind: FieldText},
		},
	}

	ResourceMe = Resource{
		Name:     "auth.me",
		Domain:   DomainAuth,
		Title:    "Current user",
		ItemPath: "/auth/me",
		Columns: []Column{
			{Title: "ID", Path: "$.id", Width: 24},
			{Title: "Name", Path: "$.full_name", Width: 24},
			{Title: "Email", Path: "$.email", Width: 28},
			{Title: "Role", Path: "$.role", Width: 12},
		},
	}
)

// DefaultCatalog is the built-in catalog of Big Mann Entertainment API endpoints.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		ResourceMe,

		Resource{
			Name:     "business.identifiers",
			Domain:   DomainBusiness,
			Title:    "Business identifiers",
			ItemPath: "/business/identifiers",
			Columns: []Column{
				{Title: "Legal name", Path: "$.business_legal_name", Width: 28},
				{Title: "EIN", Path: "$.business_ein", Width: 12},
				{Title: "TIN", Path: "$.business_tin", Width: 12},
				{Title: "GS1 prefix", Path: "$.upc_company_prefix", Width: 12},
				{Title: "ISRC prefix", Path: "$.isrc_prefix", Width: 12},
				{Title: "Publisher #", Path: "$.publisher_number", Width: 14},
			},
		},
		Resource{
			Name:       "business.products",
			Domain:     DomainBusiness,
			Title:      "Products",
			ListPath:   "/business/products",
			ItemPath:   "/business/products/{{id}}",
			CreatePath: "/business/products",
			UpdatePath: "/business/products/{{id}}",
			DeletePath: "/business/products/{{id}}",
			ListKey:    "$.products",
			Pageable:   true,
			Filters:    []string{"category", "search"},
			Columns: []Column{
				{Title: "ID", Path: "$.id", Width: 24},
				{Title: "Name", Path: "$.product_name", Width: 28},
				{Title: "Category", Path: "$.product_category", Width: 12},
				{Title: "UPC", Path: "$.upc_full_code", Width: 14},
				{Title: "GTIN", Path: "$.gtin", Width: 14},
				{Title: "ISRC", Path: "$.isrc_code", Width: 14},
			},
			Fields: []Field{
				{Name: "product_name", Label: "Product name", Kind: FieldText, Required: true},
				{Name: "product_category", Label: "Category", Kind: FieldSelect, Required: true,
					Options: []string{"music", "video", "merchandise", "digital"}},
				{Name: "artist_name", Label: "Artist", Kind: FieldText},
				{Name: "album_title", Label: "Album", Kind: FieldText},
				{Name: "track_title", Label: "Track", Kind: FieldText},
				{Name: "release_date", Label: "Release date", Kind: FieldDate},
				{Name: "duration", Label: "Duration (mm:ss)", Kind: FieldText, Pattern: `^\d{1,3}:[0-5]\d$`},
			},
		},

		Resource{
			Name:     "ddex.messages",
			Domain:   DomainDDEX,
			Title:    "DDEX messages",
			ListPath: "/ddex/messages",
			ItemPath: "/ddex/messages/{{id}}",
			ListKey:  "$.messages",
			Pageable: true,
			Filters:  []string{"message_type", "status"},
			Columns: []Column{
				{Title: "ID", Path: "$.id", Width: 24},
				{Title: "Type", Path: "$.message_type", Width: 6},
				{Title: "Title", Path: "$.title", Width: 28},
				{Title: "Status", Path: "$.status", Width: 10},
				{Title: "Created", Path: "$.created_at", Width: 24},
			},
		},
		Resource{
			Name:       "ddex.ern",
			Domain:     DomainDDEX,
			Title:      "DDEX ERN release",
			CreatePath: "/ddex/ern/create",
			Fields: []Field{
				{Name: "title", Label: "Title", Kind: FieldText, Required: true},
				{Name: "artist_name", Label: "Artist", Kind: FieldText, Required: true},
				{Name: "label_name", Label: "Label", Kind: FieldText, Required: true},
				{Name: "release_date", Label: "Release date", Kind: FieldDate, Required: true},
				{Name: "release_type", Label: "Release type", Kind: FieldSelect,
					Options: []string{"Single", "EP", "Album"}},
				{Name: "territory", Label: "Territory", Kind: FieldText, Hint: "Worldwide"},
				{Name: "genre", Label: "Genre", Kind: FieldText},
				{Name: "audio_file", Label: "Audio file", Kind: FieldFile},
				{Name: "cover_image", Label: "Cover image", Kind: FieldFile},
			},
		},
		Resource{
			Name:       "ddex.cwr",
			Domain:     DomainDDEX,
			Title:      "DDEX CWR registration",
			CreatePath: "/ddex/cwr/create",
			Fields: []Field{
				{Name: "work_title", Label: "Work title", Kind: FieldText, Required: true},
				{Name: "composer_name", Label: "Composer", Kind: FieldText, Required: true},
				{Name: "lyricist_name", Label: "Lyricist", Kind: FieldText},
				{Name: "publisher_name", Label: "Publisher", Kind: FieldText},
				{Name: "performing_rights_org", Label: "PRO", Kind: FieldSelect,
					Options: []string{"ASCAP", "BMI", "SESAC", "GMR"}},
				{Name: "duration", Label: "Duration (mm:ss)", Kind: FieldText, Pattern: `^\d{1,3}:[0-5]\d$`},
			},
		},

		Resource{
			Name:       "sponsorship.sponsors",
			Domain:     DomainSponsorship,
			Title:      "Sponsors",
			ListPath:   "/sponsorship/sponsors",
			ItemPath:   "/sponsorship/sponsors/{{id}}",
			CreatePath: "/sponsorship/sponsors",
			ListKey:    "$.sponsors",
			Pageable:   true,
			Filters:    []string{"industry", "tier"},
			Columns: []Column{
				{Title: "ID", Path: "$.id", Width: 24},
				{Title: "Company", Path: "$.company_name", Width: 24},
				{Title: "Industry", Path: "$.industry", Width: 14},
				{Title: "Tier", Path: "$.tier", Width: 10},
				{Title: "Contact", Path: "$.contact_email", Width: 28},
			},
			Fields: []Field{
				{Name: "company_name", Label: "Company", Kind: FieldText, Required: true},
				{Name: "contact_name", Label: "Contact name", Kind: FieldText},
				{Name: "contact_email", Label: "Contact email", Kind: FieldEmail, Required: true},
				{Name: "industry", Label: "Industry", Kind: FieldText},
				{Name: "tier", Label: "Tier", Kind: FieldSelect, Options: []string{"bronze", "silver", "gold", "platinum"}},
				{Name: "budget_range", Label: "Budget range", Kind: FieldText},
			},
		},
		Resource{
			Name:       "sponsorship.deals",
			Domain:     DomainSponsorship,
			Title:      "Sponsorship deals",
			ListPath:   "/sponsorship/deals",
			ItemPath:   "/sponsorship/deals/{{id}}",
			CreatePath: "/sponsorship/deals",
			UpdatePath: "/sponsorship/deals/{{id}}",
			ListKey:    "$.deals",
			Pageable:   true,
			Filters:    []string{"status", "sponsor_id"},
			Columns: []Column{
				{Title: "ID", Path: "$.id", Width: 24},
				{Title: "Deal", Path: "$.deal_name", Width: 24},
				{Title: "Type", Path: "$.deal_type", Width: 14},
				{Title: "Base fee", Path: "$.base_fee", Width: 10},
				{Title: "Status", Path: "$.status", Width: 10},
				{Title: "Ends", Path: "$.end_date", Width: 24},
			},
			Fields: []Field{
				{Name: "sponsor_id", Label: "Sponsor ID", Kind: FieldText, Required: true},
				{Name: "deal_name", Label: "Deal name", Kind: FieldText, Required: true},
				{Name: "deal_type", Label: "Deal type", Kind: FieldSelect, Required: true,
					Options: []string{"content_sponsorship", "product_placement", "event_sponsorship", "brand_ambassador"}},
				{Name: "base_fee", Label: "Base fee", Kind: FieldNumber, Required: true},
				{Name: "performance_bonus_rate", Label: "Bonus rate", Kind: FieldNumber},
				{Name: "start_date", Label: "Start date", Kind: FieldDate, Required: true},
				{Name: "end_date", Label: "End date", Kind: FieldDate, Required: true},
				{Name: "exclusive", Label: "Exclusive", Kind: FieldBool},
			},
		},

		Resource{
			Name:       "tax.payments",
			Domain:     DomainTax,
			Title:      "Tax payments",
			ListPath:   "/tax/payments",
			ItemPath:   "/tax/payments/{{id}}",
			CreatePath: "/tax/payments",
			ListKey:    "$.payments",
			Pageable:   true,
			Filters:    []string{"tax_year", "recipient_id"},
			Columns: []Column{
				{Title: "ID", Path: "$.id", Width: 24},
				{Title: "Recipient", Path: "$.recipient_name", Width: 24},
				{Title: "Amount", Path: "$.amount", Width: 10},
				{Title: "Type", Path: "$.payment_type", Width: 12},
				{Title: "Date", Path: "$.payment_date", Width: 24},
				{Title: "Year", Path: "$.tax_year", Width: 6},
			},
			Fields: []Field{
				{Name: "recipient_id", Label: "Recipient ID", Kind: FieldText, Required: true},
				{Name: "amount", Label: "Amount", Kind: FieldNumber, Required: true},
				{Name: "payment_type", Label: "Payment type", Kind: FieldSelect, Required: true,
					Options: []string{"royalty", "performance", "licensing", "other"}},
				{Name: "payment_date", Label: "Payment date", Kind: FieldDate, Required: true},
				{Name: "description", Label: "Description", Kind: FieldText},
			},
		},
		Resource{
			Name:     "tax.forms",
			Domain:   DomainTax,
			Title:    "1099 forms",
			ListPath: "/tax/forms",
			ItemPath: "/tax/forms/{{id}}",
			ListKey:  "$.forms",
			Pageable: true,
			Filters:  []string{"tax_year", "form_type", "status"},
			Columns: []Column{
				{Title: "ID", Path: "$.id", Width: 24},
				{Title: "Form", Path: "$.form_type", Width: 10},
				{Title: "Recipient", Path: "$.recipient_name", Width: 24},
				{Title: "Total", Path: "$.total_amount", Width: 10},
				{Title: "Year", Path: "$.tax_year", Width: 6},
				{Title: "Status", Path: "$.status", Width: 10},
			},
		},
		Resource{
			Name:       "tax.business",
			Domain:     DomainTax,
			Title:      "Tax business info",
			ItemPath:   "/tax/business-info",
			UpdatePath: "/tax/business-info",
			Columns: []Column{
				{Title: "Business", Path: "$.business_name", Width: 28},
				{Title: "EIN", Path: "$.ein", Width: 12},
				{Title: "Type", Path: "$.business_type", Width: 14},
				{Title: "State", Path: "$.state", Width: 6},
			},
			Fields: []Field{
				{Name: "business_name", Label: "Business name", Kind: FieldText, Required: true},
				{Name: "ein", Label: "EIN", Kind: FieldText, Required: true, Pattern: `^\d{2}-?\d{7}$`},
				{Name: "business_type", Label: "Business type", Kind: FieldSelect,
					Options: []string{"sole_proprietorship", "llc", "corporation", "partnership"}},
				{Name: "address", Label: "Address", Kind: FieldText},
				{Name: "city", Label: "City", Kind: FieldText},
				{Name: "state", Label: "State", Kind: FieldText},
				{Name: "zip_code", Label: "ZIP", Kind: FieldText},
			},
		},

		Resource{
			Name:       "industry.partners",
			Domain:     DomainIndustry,
			Title:      "Industry partners",
			ListPath:   "/industry/partners",
			ItemPath:   "/industry/partners/{{id}}",
			CreatePath: "/industry/partners",
			ListKey:    "$.partners",
			Pageable:   true,
			Filters:    []string{"category", "tier"},
			Columns: []Column{
				{Title: "ID", Path: "$.id", Width: 24},
				{Title: "Name", Path: "$.name", Width: 24},
				{Title: "Category", Path: "$.category", Width: 18},
				{Title: "Tier", Path: "$.tier", Width: 8},
				{Title: "Status", Path: "$.integration_status", Width: 12},
			},
			Fields: []Field{
				{Name: "name", Label: "Name", Kind: FieldText, Required: true},
				{Name: "category", Label: "Category", Kind: FieldText, Required: true},
				{Name: "tier", Label: "Tier", Kind: FieldSelect, Options: []string{"major", "independent", "emerging"}},
				{Name: "api_endpoint", Label: "API endpoint", Kind: FieldText},
			},
		},
		Resource{
			Name:       "industry.identifiers",
			Domain:     DomainIndustry,
			Title:      "Rights-holder identifiers",
			ListPath:   "/industry/identifiers",
			ItemPath:   "/industry/identifiers/{{id}}",
			CreatePath: "/industry/identifiers",
			DeletePath: "/industry/identifiers/{{id}}",
			ListKey:    "$.identifiers",
			Pageable:   true,
			Filters:    []string{"entity_type"},
			Columns: []Column{
				{Title: "ID", Path: "$.id", Width: 24},
				{Title: "Entity", Path: "$.entity_name", Width: 24},
				{Title: "Type", Path: "$.entity_type", Width: 10},
				{Title: "IPI", Path: "$.ipi_number", Width: 14},
				{Title: "ISNI", Path: "$.isni_number", Width: 20},
				{Title: "AARC", Path: "$.aarc_number", Width: 12},
			},
			Fields: []Field{
				{Name: "entity_name", Label: "Entity name", Kind: FieldText, Required: true},
				{Name: "entity_type", Label: "Entity type", Kind: FieldSelect, Required: true,
					Options: []string{"company", "individual"}},
				{Name: "ipi_number", Label: "IPI", Kind: FieldText, Pattern: `^\d{9,11}$`},
				{Name: "isni_number", Label: "ISNI", Kind: FieldText},
				{Name: "aarc_number", Label: "AARC", Kind: FieldText},
				{Name: "role", Label: "Role", Kind: FieldText},
			},
		},

		Resource{
			Name:     "payments.transactions",
			Domain:   DomainPayments,
			Title:    "Payment transactions",
			ListPath: "/payments/transactions",
			ItemPath: "/payments/transactions/{{id}}",
			ListKey:  "$.transactions",
			Pageable: true,
			Filters:  []string{"status", "payment_method"},
			Columns: []Column{
				{Title: "ID", Path: "$.id", Width: 24},
				{Title: "Amount", Path: "$.amount", Width: 10},
				{Title: "Currency", Path: "$.currency", Width: 8},
				{Title: "Method", Path: "$.payment_method", Width: 12},
				{Title: "Status", Path: "$.status", Width: 10},
				{Title: "Created", Path: "$.created_at", Width: 24},
			},
		},
		Resource{
			Name:       "payments.royalty-splits",
			Domain:     DomainPayments,
			Title:      "Royalty splits",
			ListPath:   "/payments/royalty-splits",
			ItemPath:   "/payments/royalty-splits/{{id}}",
			CreatePath: "/payments/royalty-splits",
			ListKey:    "$.splits",
			Pageable:   true,
			Filters:    []string{"product_id"},
			Columns: []Column{
				{Title: "ID", Path: "$.id", Width: 24},
				{Title: "Product", Path: "$.product_id", Width: 24},
				{Title: "Recipient", Path: "$.recipient_email", Width: 26},
				{Title: "Percent", Path: "$.percentage", Width: 8},
				{Title: "Role", Path: "$.role", Width: 12},
			},
			Fields: []Field{
				{Name: "product_id", Label: "Product ID", Kind: FieldText, Required: true},
				{Name: "recipient_email", Label: "Recipient email", Kind: FieldEmail, Required: true},
				{Name: "percentage", Label: "Percentage", Kind: FieldNumber, Required: true},
				{Name: "role", Label: "Role", Kind: FieldSelect, Options: []string{"artist", "producer", "songwriter", "label", "publisher"}},
			},
		},

		Resource{
			Name:       "licensing.licenses",
			Domain:     DomainLicensing,
			Title:      "Licenses",
			ListPath:   "/licensing/licenses",
			ItemPath:   "/licensing/licenses/{{id}}",
			CreatePath: "/licensing/licenses",
			UpdatePath: "/licensing/licenses/{{id}}",
			DeletePath: "/licensing/licenses/{{id}}",
			ListKey:    "$.licenses",
			Pageable:   true,
			Filters:    []string{"license_type", "status"},
			Columns: []Column{
				{Title: "ID", Path: "$.id", Width: 24},
				{Title: "Type", Path: "$.license_type", Width: 14},
				{Title: "Licensee", Path: "$.licensee_name", Width: 22},
				{Title: "Territory", Path: "$.territory", Width: 12},
				{Title: "Fee", Path: "$.license_fee", Width: 10},
				{Title: "Expires", Path: "$.end_date", Width: 24},
			},
			Fields: []Field{
				{Name: "product_id", Label: "Product ID", Kind: FieldText, Required: true},
				{Name: "license_type", Label: "License type", Kind: FieldSelect, Required: true,
					Options: []string{"sync", "mechanical", "performance", "master", "print"}},
				{Name: "licensee_name", Label: "Licensee", Kind: FieldText, Required: true},
				{Name: "territory", Label: "Territory", Kind: FieldText},
				{Name: "license_fee", Label: "Fee", Kind: FieldNumber},
				{Name: "start_date", Label: "Start date", Kind: FieldDate, Required: true},
				{Name: "end_date", Label: "End date", Kind: FieldDate},
				{Name: "exclusive", Label: "Exclusive", Kind: FieldBool},
			},
		},

		Resource{
			Name:       "gs1.products",
			Domain:     DomainGS1,
			Title:      "GS1 products",
			ListPath:   "/gs1/products",
			ItemPath:   "/gs1/products/{{id}}",
			CreatePath: "/gs1/products",
			ListKey:    "$.products",
			Pageable:   true,
			Filters:    []string{"product_type", "search"},
			Columns: []Column{
				{Title: "ID", Path: "$.product_id", Width: 24},
				{Title: "Name", Path: "$.product_name", Width: 26},
				{Title: "GTIN", Path: "$.gtin", Width: 14},
				{Title: "UPC", Path: "$.upc", Width: 13},
				{Title: "Brand", Path: "$.brand_name", Width: 16},
			},
			Fields: []Field{
				{Name: "product_name", Label: "Product name", Kind: FieldText, Required: true},
				{Name: "brand_name", Label: "Brand", Kind: FieldText, Required: true},
				{Name: "product_type", Label: "Product type", Kind: FieldSelect, Required: true,
					Options: []string{"music_single", "music_album", "video", "merchandise"}},
				{Name: "description", Label: "Description", Kind: FieldText},
				{Name: "release_date", Label: "Release date", Kind: FieldDate},
			},
		},
		Resource{
			Name:     "gs1.barcodes",
			Domain:   DomainGS1,
			Title:    "GS1 barcodes",
			ListPath: "/gs1/barcodes",
			ItemPath: "/gs1/barcodes/{{id}}",
			ListKey:  "$.barcodes",
			Pageable: true,
			Columns: []Column{
				{Title: "ID", Path: "$.id", Width: 24},
				{Title: "GTIN", Path: "$.gtin", Width: 14},
				{Title: "Format", Path: "$.format", Width: 10},
				{Title: "Created", Path: "$.created_at", Width: 24},
			},
		},
	)
}
