package sql

import (
	"embed"
	_ "embed"
)

// Migrations holds the schema migration files, applied in filename order.
//
//go:embed migrations
var Migrations embed.FS

//go:embed queries/get_charge.sql
var GetCharge string

//go:embed queries/get_group_charges.sql
var GetGroupCharges string

//go:embed queries/get_patient.sql
var GetPatient string

//go:embed queries/get_provider.sql
var GetProvider string

//go:embed queries/register_document.sql
var RegisterDocument string
