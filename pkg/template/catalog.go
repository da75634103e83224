package template

import "github.com/rankwise/semgraph/pkg/common"

// BuiltinTemplates returns the niche templates shipped with the
// service. Additional templates can be supplied through the catalog
// loader; ids must stay unique across both sources.
func BuiltinTemplates() []NicheTemplate {
	return []NicheTemplate{restaurantTemplate(), clinicTemplate()}
}

// FindTemplate returns the template with the given id from the slice,
// or nil.
func FindTemplate(templates []NicheTemplate, id string) *NicheTemplate {
	for i := range templates {
		if templates[i].ID == id {
			return &templates[i]
		}
	}
	return nil
}

func restaurantTemplate() NicheTemplate {
	return NicheTemplate{
		ID:          "restaurant",
		Name:        "Restaurant",
		Description: "A local restaurant with menu, location and review presence.",
		Entities: []EntityStub{
			{Name: "", Type: common.EntityTypeBusiness, SchemaType: "Restaurant"},                                           // 0
			{Name: "Website", Type: common.EntityTypeWebsite, SchemaType: "WebSite"},                                        // 1
			{Name: "Signature Dish", Type: common.EntityTypeProduct, SchemaType: "Product"},                                 // 2
			{Name: "Neighborhood", Type: common.EntityTypePlace, SchemaType: "Place"},                                       // 3
			{Name: "Head Chef", Type: common.EntityTypePerson, SchemaType: "Person"},                                        // 4
			{Name: "Google Business Profile", Type: common.EntityTypeListingProfile},                                        // 5
			{Name: "Customer Reviews", Type: common.EntityTypeReview, SchemaType: "Review"},                                 // 6
			{Name: "Catering Service", Type: common.EntityTypeService, SchemaType: "Service"},                               // 7
			{Name: "Menu Page", Type: common.EntityTypeContent, SchemaType: "Article", Description: "The published menu."}, // 8
		},
		Relations: []RelationStub{
			{SubjectIndex: 0, ObjectIndex: 1, Predicate: "has_website"},
			{SubjectIndex: 0, ObjectIndex: 2, Predicate: "offers"},
			{SubjectIndex: 0, ObjectIndex: 3, Predicate: "located_in"},
			{SubjectIndex: 4, ObjectIndex: 0, Predicate: "works_at"},
			{SubjectIndex: 0, ObjectIndex: 5, Predicate: "listed_on"},
			{SubjectIndex: 6, ObjectIndex: 0, Predicate: "reviews"},
			{SubjectIndex: 0, ObjectIndex: 7, Predicate: "offers"},
			{SubjectIndex: 1, ObjectIndex: 8, Predicate: "publishes"},
		},
		ScopeQuestions: []ScopeQuestion{
			{Key: "has_chef", Prompt: "Do you want to feature your head chef?", Default: true, EntityIndices: []int{4}},
			{Key: "has_catering", Prompt: "Do you offer catering?", Default: false, EntityIndices: []int{7}},
			{Key: "has_menu_page", Prompt: "Does your website have a menu page?", Default: true, EntityIndices: []int{8}},
		},
		DataQuestions: []DataQuestion{
			{Key: "business_name", Prompt: "What is your restaurant called?", EntityIndex: 0, Field: FieldName},
			{Key: "signature_dish", Prompt: "What is your signature dish?", EntityIndex: 2, Field: FieldName},
			{Key: "neighborhood", Prompt: "Which area do you serve?", EntityIndex: 3, Field: FieldName},
			{Key: "chef_name", Prompt: "What is your head chef's name?", EntityIndex: 4, Field: FieldName},
		},
	}
}

func clinicTemplate() NicheTemplate {
	return NicheTemplate{
		ID:          "clinic",
		Name:        "Clinic",
		Description: "A medical practice with practitioners, specialties and equipment.",
		Entities: []EntityStub{
			{Name: "", Type: common.EntityTypeBusiness, SchemaType: "MedicalBusiness"},            // 0
			{Name: "Website", Type: common.EntityTypeWebsite, SchemaType: "WebSite"},              // 1
			{Name: "Lead Practitioner", Type: common.EntityTypePerson, SchemaType: "Person"},      // 2
			{Name: "Primary Specialty", Type: common.EntityTypeSpecialty},                         // 3
			{Name: "Consultation", Type: common.EntityTypeService, SchemaType: "Service"},         // 4
			{Name: "District", Type: common.EntityTypePlace, SchemaType: "Place"},                 // 5
			{Name: "Diagnostic Equipment", Type: common.EntityTypeEquipment},                      // 6
			{Name: "Patient Reviews", Type: common.EntityTypeReview, SchemaType: "Review"},        // 7
			{Name: "Health Articles", Type: common.EntityTypeContent, SchemaType: "Article"},      // 8
			{Name: "Doctolib Profile", Type: common.EntityTypeListingProfile},                     // 9
		},
		Relations: []RelationStub{
			{SubjectIndex: 0, ObjectIndex: 1, Predicate: "has_website"},
			{SubjectIndex: 2, ObjectIndex: 0, Predicate: "works_at"},
			{SubjectIndex: 2, ObjectIndex: 3, Predicate: "specializes_in"},
			{SubjectIndex: 0, ObjectIndex: 4, Predicate: "offers"},
			{SubjectIndex: 0, ObjectIndex: 5, Predicate: "located_in"},
			{SubjectIndex: 0, ObjectIndex: 6, Predicate: "owns"},
			{SubjectIndex: 7, ObjectIndex: 0, Predicate: "reviews"},
			{SubjectIndex: 1, ObjectIndex: 8, Predicate: "publishes"},
			{SubjectIndex: 0, ObjectIndex: 9, Predicate: "listed_on"},
		},
		ScopeQuestions: []ScopeQuestion{
			{Key: "has_equipment", Prompt: "Do you want to highlight special equipment?", Default: false, EntityIndices: []int{6}},
			{Key: "publishes_articles", Prompt: "Do you publish health content?", Default: true, EntityIndices: []int{8}},
			{Key: "has_booking_profile", Prompt: "Are you listed on a booking platform?", Default: true, EntityIndices: []int{9}},
		},
		DataQuestions: []DataQuestion{
			{Key: "business_name", Prompt: "What is your clinic called?", EntityIndex: 0, Field: FieldName},
			{Key: "practitioner_name", Prompt: "Who is your lead practitioner?", EntityIndex: 2, Field: FieldName},
			{Key: "specialty", Prompt: "What is your primary specialty?", EntityIndex: 3, Field: FieldName},
			{Key: "district", Prompt: "Which district are you in?", EntityIndex: 5, Field: FieldName},
		},
	}
}
