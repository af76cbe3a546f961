package postgres

import (
	"github.com/oksasatya/go-bootcamp-directory/internal/domain/repository"
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindNumber
	kindBool
	kindTime
	kindUUID
	kindTextArray
	kindJSON
)

type column struct {
	expr string
	kind fieldKind
	// omitNull drops the key from output rows when the value is NULL.
	omitNull bool
}

// relation describes how a populate path resolves to another resource.
// Belongs-to relations read the target id from localField; has-many
// relations match target rows whose foreignField equals this row's id.
type relation struct {
	target       string
	localField   string
	foreignField string
	many         bool
}

type resource struct {
	name     string
	table    string
	fields   map[string]column
	defaults []string
	rels     map[string]relation
}

func (r *resource) field(name string) (column, bool) {
	c, ok := r.fields[name]
	return c, ok
}

const bootcampLocationJSON = `json_build_object(` +
	`'type', t.location_type, ` +
	`'coordinates', json_build_array(t.longitude, t.latitude), ` +
	`'formattedAddress', t.formatted_address, ` +
	`'street', t.street, ` +
	`'city', t.city, ` +
	`'state', t.state, ` +
	`'zipcode', t.zipcode, ` +
	`'country', t.country)`

var bootcampResource = &resource{
	name:  repository.ResourceBootcamps,
	table: "bootcamps",
	fields: map[string]column{
		"id":                        {expr: "t.id", kind: kindUUID},
		"name":                      {expr: "t.name", kind: kindText},
		"slug":                      {expr: "t.slug", kind: kindText},
		"description":               {expr: "t.description", kind: kindText},
		"website":                   {expr: "t.website", kind: kindText},
		"phone":                     {expr: "t.phone", kind: kindText},
		"email":                     {expr: "t.email", kind: kindText},
		"location":                  {expr: bootcampLocationJSON, kind: kindJSON},
		"location.formattedAddress": {expr: "t.formatted_address", kind: kindText},
		"location.street":           {expr: "t.street", kind: kindText},
		"location.city":             {expr: "t.city", kind: kindText},
		"location.state":            {expr: "t.state", kind: kindText},
		"location.zipcode":          {expr: "t.zipcode", kind: kindText},
		"location.country":          {expr: "t.country", kind: kindText},
		"careers":                   {expr: "t.careers", kind: kindTextArray},
		"averageRating":             {expr: "t.average_rating", kind: kindNumber, omitNull: true},
		"averageCost":               {expr: "t.average_cost", kind: kindNumber, omitNull: true},
		"photo":                     {expr: "t.photo", kind: kindText},
		"housing":                   {expr: "t.housing", kind: kindBool},
		"jobAssistance":             {expr: "t.job_assistance", kind: kindBool},
		"jobGuarantee":              {expr: "t.job_guarantee", kind: kindBool},
		"acceptGi":                  {expr: "t.accept_gi", kind: kindBool},
		"createdAt":                 {expr: "t.created_at", kind: kindTime},
		"user":                      {expr: "t.user_id", kind: kindUUID},
	},
	defaults: []string{
		"id", "name", "slug", "description", "website", "phone", "email", "location", "careers",
		"averageRating", "averageCost", "photo", "housing", "jobAssistance", "jobGuarantee",
		"acceptGi", "createdAt", "user",
	},
	rels: map[string]relation{
		"courses": {target: repository.ResourceCourses, foreignField: "bootcamp", many: true},
		"reviews": {target: repository.ResourceReviews, foreignField: "bootcamp", many: true},
	},
}

var courseResource = &resource{
	name:  repository.ResourceCourses,
	table: "courses",
	fields: map[string]column{
		"id":                   {expr: "t.id", kind: kindUUID},
		"title":                {expr: "t.title", kind: kindText},
		"description":          {expr: "t.description", kind: kindText},
		"weeks":                {expr: "t.weeks", kind: kindText},
		"tuition":              {expr: "t.tuition", kind: kindNumber},
		"minimumSkill":         {expr: "t.minimum_skill", kind: kindText},
		"scholarshipAvailable": {expr: "t.scholarship_available", kind: kindBool},
		"createdAt":            {expr: "t.created_at", kind: kindTime},
		"bootcamp":             {expr: "t.bootcamp_id", kind: kindUUID},
		"user":                 {expr: "t.user_id", kind: kindUUID},
	},
	defaults: []string{
		"id", "title", "description", "weeks", "tuition", "minimumSkill",
		"scholarshipAvailable", "createdAt", "bootcamp", "user",
	},
	rels: map[string]relation{
		"bootcamp": {target: repository.ResourceBootcamps, localField: "bootcamp"},
		"user":     {target: repository.ResourceUsers, localField: "user"},
	},
}

var reviewResource = &resource{
	name:  repository.ResourceReviews,
	table: "reviews",
	fields: map[string]column{
		"id":        {expr: "t.id", kind: kindUUID},
		"title":     {expr: "t.title", kind: kindText},
		"text":      {expr: "t.text", kind: kindText},
		"rating":    {expr: "t.rating", kind: kindNumber},
		"createdAt": {expr: "t.created_at", kind: kindTime},
		"bootcamp":  {expr: "t.bootcamp_id", kind: kindUUID},
		"user":      {expr: "t.user_id", kind: kindUUID},
	},
	defaults: []string{"id", "title", "text", "rating", "createdAt", "bootcamp", "user"},
	rels: map[string]relation{
		"bootcamp": {target: repository.ResourceBootcamps, localField: "bootcamp"},
		"user":     {target: repository.ResourceUsers, localField: "user"},
	},
}

// userResource never exposes credential or token columns.
var userResource = &resource{
	name:  repository.ResourceUsers,
	table: "users",
	fields: map[string]column{
		"id":               {expr: "t.id", kind: kindUUID},
		"name":             {expr: "t.name", kind: kindText},
		"email":            {expr: "t.email", kind: kindText},
		"role":             {expr: "t.role", kind: kindText},
		"isEmailConfirmed": {expr: "t.is_email_confirmed", kind: kindBool},
		"createdAt":        {expr: "t.created_at", kind: kindTime},
	},
	defaults: []string{"id", "name", "email", "role", "isEmailConfirmed", "createdAt"},
}

var resources = map[string]*resource{
	repository.ResourceBootcamps: bootcampResource,
	repository.ResourceCourses:   courseResource,
	repository.ResourceReviews:   reviewResource,
	repository.ResourceUsers:     userResource,
}
