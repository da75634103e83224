package schema

// DefaultCatalog returns the built-in slice of the Schema.org
// vocabulary used when no external catalog is configured. It covers the
// types the entity editor and the niche templates annotate with; the
// full vocabulary can be supplied through the catalog loader.
func DefaultCatalog() []TypeDef {
	return []TypeDef{
		{
			Name:        "Thing",
			Description: "The most generic type of item.",
			Properties: []Property{
				{Name: "name", Required: true, Description: "The name of the item.", Example: "Acme Dental"},
				{Name: "description", Description: "A description of the item."},
				{Name: "url", Description: "URL of the item.", Example: "https://example.com"},
				{Name: "image", Description: "An image of the item."},
			},
		},
		{
			Name:        "Organization",
			Parent:      "Thing",
			Description: "An organization such as a school, NGO, corporation, club, etc.",
			SearchTag:   "business company",
			Properties: []Property{
				{Name: "legalName", Description: "The official name of the organization."},
				{Name: "telephone", Description: "The telephone number.", Example: "+1-555-0100"},
				{Name: "email", Description: "Email address."},
				{Name: "address", Description: "Physical address of the organization."},
				{Name: "sameAs", Description: "URL of a reference page that unambiguously indicates the item's identity."},
			},
		},
		{
			Name:        "LocalBusiness",
			Parent:      "Organization",
			Description: "A particular physical business or branch of an organization.",
			SearchTag:   "shop store local",
			Properties: []Property{
				{Name: "address", Required: true, Description: "Physical address of the business."},
				{Name: "openingHours", Description: "The general opening hours.", Example: "Mo-Fr 09:00-17:00"},
				{Name: "priceRange", Description: "The price range of the business.", Example: "$$"},
				{Name: "geo", Description: "The geo coordinates of the place."},
			},
		},
		{
			Name:        "Restaurant",
			Parent:      "LocalBusiness",
			Description: "A restaurant.",
			SearchTag:   "food dining",
			Properties: []Property{
				{Name: "servesCuisine", Description: "The cuisine of the restaurant.", Example: "Italian"},
				{Name: "menu", Description: "URL or description of the menu."},
				{Name: "acceptsReservations", Description: "Whether reservations are accepted."},
			},
		},
		{
			Name:        "MedicalBusiness",
			Parent:      "LocalBusiness",
			Description: "A particular physical or virtual business providing medical services.",
			SearchTag:   "clinic doctor health",
			Properties: []Property{
				{Name: "medicalSpecialty", Description: "A medical specialty of the provider.", Example: "Dentistry"},
			},
		},
		{
			Name:        "Person",
			Parent:      "Thing",
			Description: "A person (alive, dead, undead, or fictional).",
			SearchTag:   "people owner staff",
			Properties: []Property{
				{Name: "jobTitle", Description: "The job title of the person.", Example: "Head Chef"},
				{Name: "worksFor", Description: "Organizations that the person works for."},
				{Name: "knowsAbout", Description: "A topic the person has expertise in."},
			},
		},
		{
			Name:        "Place",
			Parent:      "Thing",
			Description: "Entities that have a somewhat fixed, physical extension.",
			SearchTag:   "location area",
			Properties: []Property{
				{Name: "address", Description: "Physical address of the place."},
				{Name: "geo", Description: "The geo coordinates of the place."},
				{Name: "containedInPlace", Description: "The place this place is directly contained in."},
			},
		},
		{
			Name:        "Product",
			Parent:      "Thing",
			Description: "Any offered product or service.",
			SearchTag:   "goods item",
			Properties: []Property{
				{Name: "brand", Description: "The brand of the product."},
				{Name: "offers", Description: "An offer to provide this product.", Example: `{"@type":"Offer","price":"29.99"}`},
				{Name: "sku", Description: "The Stock Keeping Unit."},
			},
		},
		{
			Name:        "Service",
			Parent:      "Thing",
			Description: "A service provided by an organization.",
			SearchTag:   "offering",
			Properties: []Property{
				{Name: "serviceType", Description: "The type of service being offered.", Example: "Teeth whitening"},
				{Name: "provider", Description: "The organization providing the service."},
				{Name: "areaServed", Description: "The geographic area where the service is provided."},
			},
		},
		{
			Name:        "CreativeWork",
			Parent:      "Thing",
			Description: "The most generic kind of creative work.",
			Properties: []Property{
				{Name: "author", Description: "The author of this content."},
				{Name: "datePublished", Description: "Date of first publication.", Example: "2025-06-01"},
				{Name: "headline", Description: "Headline of the work."},
			},
		},
		{
			Name:        "WebSite",
			Parent:      "CreativeWork",
			Description: "A WebSite is a set of related web pages.",
			SearchTag:   "homepage site",
			Properties: []Property{
				{Name: "url", Required: true, Description: "URL of the website."},
				{Name: "publisher", Description: "The publisher of the website."},
			},
		},
		{
			Name:        "Article",
			Parent:      "CreativeWork",
			Description: "An article, such as a news article or piece of investigative report.",
			SearchTag:   "blog post content",
			Properties: []Property{
				{Name: "articleBody", Description: "The actual body of the article."},
				{Name: "wordCount", Description: "The number of words in the text."},
			},
		},
		{
			Name:        "Review",
			Parent:      "CreativeWork",
			Description: "A review of an item, for example a restaurant or a product.",
			SearchTag:   "rating testimonial",
			Properties: []Property{
				{Name: "reviewRating", Description: "The rating given in this review.", Example: `{"@type":"Rating","ratingValue":"5"}`},
				{Name: "itemReviewed", Description: "The item that is being reviewed."},
				{Name: "reviewBody", Description: "The actual body of the review."},
			},
		},
		{
			Name:        "Offer",
			Parent:      "Thing",
			Description: "An offer to transfer some rights to an item or provide a service.",
			SearchTag:   "price deal",
			Properties: []Property{
				{Name: "price", Description: "The offer price.", Example: "29.99"},
				{Name: "priceCurrency", Description: "The currency of the price.", Example: "EUR"},
				{Name: "availability", Description: "The availability of this item."},
			},
		},
	}
}
