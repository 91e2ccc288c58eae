package entity

import (
	"encoding/json"
	"fmt"
)

// Los campos opcionales son punteros: nil significa que el mensaje no los trae.

type State struct {
	Name         *string `json:"name,omitempty"`
	Abbreviation *string `json:"abbreviation,omitempty"`
}

func (*State) EntityType() string { return "State" }

// UnmarshalJSON acepta "abbr" como alias de "abbreviation".
func (s *State) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name         *string `json:"name"`
		Abbreviation *string `json:"abbreviation"`
		Abbr         *string `json:"abbr"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Name = raw.Name
	s.Abbreviation = raw.Abbreviation
	if raw.Abbr != nil {
		s.Abbreviation = raw.Abbr
	}
	return nil
}

type CountyOffice struct {
	Name *string `json:"name,omitempty"`
}

func (*CountyOffice) EntityType() string { return "CountyOffice" }

type ShippingAddress struct {
	City       *string      `json:"city,omitempty"`
	Country    *string      `json:"country,omitempty"`
	Latitude   *json.Number `json:"latitude,omitempty"`
	Longitude  *json.Number `json:"longitude,omitempty"`
	PostalCode *string      `json:"postalCode,omitempty"`
	State      *string      `json:"state,omitempty"`
	Street     *string      `json:"street,omitempty"`
}

func (*ShippingAddress) EntityType() string { return "ShippingAddress" }

type User struct {
	UUID      *string `json:"uuid,omitempty"`
	TrackID   *string `json:"track_id,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Alias     *string `json:"nickname,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Mobile    *string `json:"mobile,omitempty"`
	Extension *string `json:"extension,omitempty"`
	Fax       *string `json:"fax,omitempty"`
}

func (*User) EntityType() string { return "User" }

type Account struct {
	UUID                *string          `json:"uuid,omitempty"`
	TrackID             *string          `json:"track_id,omitempty"`
	State               *State           `json:"state,omitempty"`
	CountyOffice        *CountyOffice    `json:"county_office,omitempty"`
	ParentAccount       *Account         `json:"parent_account,omitempty"`
	Type                *string          `json:"type,omitempty"`
	Name                *string          `json:"name,omitempty"`
	Address             *string          `json:"address,omitempty"`
	City                *string          `json:"city,omitempty"`
	Zip                 *string          `json:"zip,omitempty"`
	Phone1              *string          `json:"phone1,omitempty"`
	Phone2              *string          `json:"phone2,omitempty"`
	Fax                 *string          `json:"fax,omitempty"`
	Email               *string          `json:"email,omitempty"`
	Latitude            *json.Number     `json:"latitude,omitempty"`
	Longitude           *json.Number     `json:"longitude,omitempty"`
	ShippingAddress     *ShippingAddress `json:"shipping_address,omitempty"`
	CreatedByUserUUID   *string          `json:"created_by_user_uuid,omitempty"`
	ModifiedByUserUUID  *string          `json:"modified_by_user_uuid,omitempty"`
	RecordOwnerUserUUID *string          `json:"record_owner_user_uuid,omitempty"`
	RecordTypeName      *string          `json:"record_type_name,omitempty"`
}

func (*Account) EntityType() string { return "Account" }

// Depth cuenta los niveles de ParentAccount, incluido el propio.
func (a *Account) Depth() int {
	depth := 0
	for cur := a; cur != nil; cur = cur.ParentAccount {
		depth++
	}
	return depth
}

func (a *Account) Validate() error {
	if a == nil {
		return nil
	}
	if d := a.Depth(); d > MaxNestingDepth {
		return fmt.Errorf("%w: account has %d levels, max %d", ErrNestingTooDeep, d, MaxNestingDepth)
	}
	return nil
}

type Contact struct {
	UUID                       *string  `json:"uuid,omitempty"`
	TrackID                    *string  `json:"track_id,omitempty"`
	Account                    *Account `json:"account,omitempty"`
	Name                       *string  `json:"name,omitempty"`
	FullName                   *string  `json:"full_name,omitempty"`
	Salutation                 *string  `json:"salutation,omitempty"`
	FirstName                  *string  `json:"first_name,omitempty"`
	LastName                   *string  `json:"last_name,omitempty"`
	Title                      *string  `json:"title,omitempty"`
	Department                 *string  `json:"department,omitempty"`
	Position                   *string  `json:"position,omitempty"`
	Email                      *string  `json:"email,omitempty"`
	Phone                      *string  `json:"phone,omitempty"`
	MobilePhone                *string  `json:"mobile_phone,omitempty"`
	HomePhone                  *string  `json:"home_phone,omitempty"`
	OtherPhone                 *string  `json:"other_phone,omitempty"`
	Fax                        *string  `json:"fax,omitempty"`
	Extension                  *string  `json:"extension,omitempty"`
	MailingStreet              *string  `json:"mailing_street,omitempty"`
	MailingCity                *string  `json:"mailing_city,omitempty"`
	MailingState               *string  `json:"mailing_state,omitempty"`
	MailingPostalCode          *string  `json:"mailing_postalcode,omitempty"`
	MailingCountry             *string  `json:"mailing_country,omitempty"`
	Notes                      *string  `json:"notes,omitempty"`
	Description                *string  `json:"description,omitempty"`
	Birthdate                  *string  `json:"birthdate,omitempty"`
	LeadSource                 *string  `json:"lead_source,omitempty"`
	SalesforceOwnerID          *string  `json:"salesforce_owner_id,omitempty"`
	AccountSalesforceID        *string  `json:"account_salesforce_id,omitempty"`
	ReportsToID                *string  `json:"reports_to_id,omitempty"`
	IsMarketer                 *bool    `json:"is_marketer,omitempty"`
	IsKeyContact               *bool    `json:"is_keycontact,omitempty"`
	IsCorporate                *bool    `json:"is_corporate,omitempty"`
	GetsSR                     *bool    `json:"gets_sr,omitempty"`
	GetsReferralConfirmation   *bool    `json:"gets_referral_confirmation,omitempty"`
	NoLongerEmployedAtFacility *bool    `json:"no_longer_employed_at_facility,omitempty"`
	DoNotCall                  *bool    `json:"do_not_call,omitempty"`
	HasOptedOutOfFax           *bool    `json:"has_opted_out_of_fax,omitempty"`
	HasOptedOutOfEmail         *bool    `json:"has_opted_out_of_email,omitempty"`
	IsDeleted                  *bool    `json:"is_deleted,omitempty"`
}

func (*Contact) EntityType() string { return "Contact" }

func (c *Contact) Validate() error { return c.Account.Validate() }

type AccountContactRelation struct {
	UUID                     *string  `json:"uuid,omitempty"`
	GetsSR                   *bool    `json:"gets_sr,omitempty"`
	GetsReferralConfirmation *bool    `json:"gets_referral_confirmation,omitempty"`
	IsDirect                 *bool    `json:"is_direct,omitempty"`
	CreatedByUserUUID        *string  `json:"created_by_user_uuid,omitempty"`
	CreatedDate              *string  `json:"created_date,omitempty"`
	ModifiedByUserUUID       *string  `json:"modified_by_user_uuid,omitempty"`
	LastModifiedDate         *string  `json:"last_modified_date,omitempty"`
	Contact                  *Contact `json:"contact,omitempty"`
	Account                  *Account `json:"account,omitempty"`
}

func (*AccountContactRelation) EntityType() string { return "AccountContactRelation" }

func (r *AccountContactRelation) Validate() error {
	if r.Contact != nil {
		if err := r.Contact.Validate(); err != nil {
			return err
		}
	}
	return r.Account.Validate()
}

type Applicant struct {
	UUID                     *string                   `json:"uuid,omitempty"`
	RelatedApplicantContacts []RelatedApplicantContact `json:"related_applicant_contacts,omitempty"`
	TrackID                  *string                   `json:"track_id,omitempty"`
	FirstName                *string                   `json:"first_name,omitempty"`
	LastName                 *string                   `json:"last_name,omitempty"`
	Email                    *string                   `json:"email,omitempty"`
	CellPhone                *string                   `json:"cell_phone,omitempty"`
	HomePhone                *string                   `json:"home_phone,omitempty"`
	OtherPhone               *string                   `json:"other_phone,omitempty"`
	Street1                  *string                   `json:"street1,omitempty"`
	Street2                  *string                   `json:"street2,omitempty"`
	City                     *string                   `json:"city,omitempty"`
	State                    *State                    `json:"state,omitempty"`
	Zip                      *string                   `json:"zip,omitempty"`
	MaritalStatus            *string                   `json:"marital_status,omitempty"`
	Personality              *string                   `json:"personality,omitempty"`
	Residency                *string                   `json:"residency,omitempty"`
	Status                   *string                   `json:"status,omitempty"`
	IsUSCitizen              *bool                     `json:"is_us_citizen,omitempty"`
	IsDeleted                *bool                     `json:"is_deleted,omitempty"`
	CurrentFacility          *Account                  `json:"current_facility,omitempty"`
	CaseManager              *User                     `json:"case_manager,omitempty"`
	CreatedBy                *User                     `json:"created_by,omitempty"`
	CreatedDate              *string                   `json:"created_date,omitempty"`
	LastModifiedBy           *User                     `json:"last_modified_by,omitempty"`
	LastModifiedDate         *string                   `json:"last_modified_date,omitempty"`
}

func (*Applicant) EntityType() string { return "Applicant" }

// Depth cuenta los niveles de Applicant anidados a través de sus contactos relacionados.
func (a *Applicant) Depth() int {
	if a == nil {
		return 0
	}
	deepest := 0
	for i := range a.RelatedApplicantContacts {
		if d := a.RelatedApplicantContacts[i].Applicant.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

func (a *Applicant) Validate() error {
	if a == nil {
		return nil
	}
	if d := a.Depth(); d > MaxNestingDepth {
		return fmt.Errorf("%w: applicant has %d levels, max %d", ErrNestingTooDeep, d, MaxNestingDepth)
	}
	for i := range a.RelatedApplicantContacts {
		if err := a.RelatedApplicantContacts[i].Applicant.CurrentFacility.Validate(); err != nil {
			return err
		}
	}
	return a.CurrentFacility.Validate()
}

type ApplicantContact struct {
	UUID             *string `json:"uuid,omitempty"`
	ApplicantUUID    *string `json:"applicant_uuid,omitempty"`
	FirstName        *string `json:"first_name,omitempty"`
	LastName         *string `json:"last_name,omitempty"`
	Email            *string `json:"email,omitempty"`
	CellPhone        *string `json:"cell_phone,omitempty"`
	HomePhone        *string `json:"home_phone,omitempty"`
	OtherPhone       *string `json:"other_phone,omitempty"`
	Fax              *string `json:"fax,omitempty"`
	Street1          *string `json:"street1,omitempty"`
	Street2          *string `json:"street2,omitempty"`
	City             *string `json:"city,omitempty"`
	State            *State  `json:"state,omitempty"`
	Zip              *string `json:"zip,omitempty"`
	IsDeleted        *bool   `json:"is_deleted,omitempty"`
	CreatedBy        *User   `json:"created_by,omitempty"`
	CreatedDate      *string `json:"created_date,omitempty"`
	LastModifiedBy   *User   `json:"last_modified_by,omitempty"`
	LastModifiedDate *string `json:"last_modified_date,omitempty"`
}

func (*ApplicantContact) EntityType() string { return "ApplicantContact" }

// RelatedApplicantContact une un Applicant con uno de sus contactos.
type RelatedApplicantContact struct {
	UUID              *string           `json:"uuid,omitempty"`
	ApplicantUUID     *string           `json:"applicant_uuid,omitempty"`
	Applicant         *Applicant        `json:"applicant,omitempty"`
	ApplicantContact  *ApplicantContact `json:"applicant_contact,omitempty"`
	Relationship      *string           `json:"relationship,omitempty"`
	IsPowerOfAttorney *bool             `json:"is_power_of_attorney,omitempty"`
	IsPrimary         *bool             `json:"is_primary,omitempty"`
	IsSpouse          *bool             `json:"is_spouse,omitempty"`
	IsDeleted         *bool             `json:"is_deleted,omitempty"`
	CreatedBy         *User             `json:"created_by,omitempty"`
	CreatedDate       *string           `json:"created_date,omitempty"`
	LastModifiedBy    *User             `json:"last_modified_by,omitempty"`
	LastModifiedDate  *string           `json:"last_modified_date,omitempty"`
}

func (*RelatedApplicantContact) EntityType() string { return "RelatedApplicantContact" }

func (r *RelatedApplicantContact) Validate() error { return r.Applicant.Validate() }

// Referral solo recoge los campos que consumen los servicios de abajo.
type Referral struct {
	UUID                 *string      `json:"uuid,omitempty"`
	TrackID              *string      `json:"track_id,omitempty"`
	Applicant            *Applicant   `json:"applicant,omitempty"`
	ApplicantUUID        *string      `json:"applicant_uuid,omitempty"`
	ReferringContact     *Contact     `json:"referring_contact,omitempty"`
	ReferringParty       *Account     `json:"referring_party,omitempty"`
	StateOfService       *State       `json:"state_of_service,omitempty"`
	Status               *string      `json:"status,omitempty"`
	CoverageType         *string      `json:"coverage_type,omitempty"`
	MedicaidCaseType     *string      `json:"medicaid_case_type,omitempty"`
	PayType              *string      `json:"pay_type,omitempty"`
	ReferralMethod       *string      `json:"referral_method,omitempty"`
	ReferrerNotes        *string      `json:"referrer_notes,omitempty"`
	DateReferralReceived *string      `json:"date_referral_received,omitempty"`
	FollowUpDate         *string      `json:"follow_up_date,omitempty"`
	Income               *json.Number `json:"income,omitempty"`
	PrivatePayAmount     *json.Number `json:"private_pay_amount,omitempty"`
	FacilityPayAmount    *json.Number `json:"facility_pay_amount,omitempty"`
	IntakeRep            *User        `json:"intake_rep,omitempty"`
	MarketingRep         *User        `json:"marketing_rep,omitempty"`
	CreatedBy            *User        `json:"created_by,omitempty"`
	CreatedDate          *string      `json:"created_date,omitempty"`
	LastModifiedBy       *User        `json:"last_modified_by,omitempty"`
	LastModifiedDate     *string      `json:"last_modified_date,omitempty"`
	IsDeleted            *bool        `json:"is_deleted,omitempty"`
}

func (*Referral) EntityType() string { return "Referral" }

func (r *Referral) Validate() error {
	if r.Applicant != nil {
		if err := r.Applicant.Validate(); err != nil {
			return err
		}
	}
	if r.ReferringContact != nil {
		if err := r.ReferringContact.Validate(); err != nil {
			return err
		}
	}
	return r.ReferringParty.Validate()
}

type Task struct {
	UUID           *string         `json:"uuid,omitempty"`
	AssigneeUUID   *string         `json:"assignee_uuid,omitempty"`
	Subject        *string         `json:"subject,omitempty"`
	Description    *string         `json:"description,omitempty"`
	Status         *string         `json:"status,omitempty"`
	WhatUUID       *string         `json:"what_uuid,omitempty"`
	WhatType       *string         `json:"what_type,omitempty"`
	CreatedBy      json.RawMessage `json:"created_by,omitempty"`
	DeletedBy      json.RawMessage `json:"deleted_by,omitempty"`
	LastModifiedBy json.RawMessage `json:"last_modified_by,omitempty"`
}

func (*Task) EntityType() string { return "Task" }

type Event struct {
	UUID              *string      `json:"uuid,omitempty"`
	Subject           *string      `json:"subject,omitempty"`
	Description       *string      `json:"description,omitempty"`
	DurationInMinutes *json.Number `json:"duration_in_minutes,omitempty"`
	EndDateTimeUTC    *string      `json:"end_date_time_utc,omitempty"`
	OwnerUUID         *string      `json:"owner_uuid,omitempty"`
	WhatUUID          *string      `json:"what_uuid,omitempty"`
	WhatType          *string      `json:"what_type,omitempty"`
	WhoUUIDs          []string     `json:"who_uuids,omitempty"`
	DateCompleted     *string      `json:"date_completed,omitempty"`
}

func (*Event) EntityType() string { return "Event" }

type FieldRepApplication struct {
	UUID                  *string          `json:"uuid,omitempty"`
	ExternalApplicantUUID *string          `json:"external_applicant_uuid,omitempty"`
	County                *string          `json:"county,omitempty"`
	State                 *State           `json:"state,omitempty"`
	FieldRepUser          *User            `json:"field_rep_user,omitempty"`
	Status                *string          `json:"status,omitempty"`
	MedicaidDetails       []MedicaidDetail `json:"medicaid_details,omitempty"`
	CreatedAt             *string          `json:"created_at,omitempty"`
	UpdatedAt             *string          `json:"updated_at,omitempty"`
}

func (*FieldRepApplication) EntityType() string { return "FieldRepApplication" }

type FieldRepAppointment struct {
	UUID                     *string              `json:"uuid,omitempty"`
	Subject                  *string              `json:"subject,omitempty"`
	Description              *string              `json:"description,omitempty"`
	Location                 *string              `json:"location,omitempty"`
	Day                      *string              `json:"day,omitempty"`
	InPerson                 *bool                `json:"in_person,omitempty"`
	IsPrivate                *bool                `json:"is_private,omitempty"`
	StartDatetime            *string              `json:"start_datetime,omitempty"`
	EndDatetime              *string              `json:"end_datetime,omitempty"`
	DurationInMinutes        *json.Number         `json:"duration_in_minutes,omitempty"`
	ActivityDate             *string              `json:"activity_date,omitempty"`
	ActivityDatetime         *string              `json:"activity_datetime,omitempty"`
	Application              *FieldRepApplication `json:"application,omitempty"`
	Referral                 *Referral            `json:"referral,omitempty"`
	ReferringParty           *Account             `json:"referring_party,omitempty"`
	ExternalApplicantTrackID *string              `json:"external_applicant_track_id,omitempty"`
	CreatedAt                *string              `json:"created_at,omitempty"`
	UpdatedAt                *string              `json:"updated_at,omitempty"`
}

func (*FieldRepAppointment) EntityType() string { return "FieldRepAppointment" }

func (a *FieldRepAppointment) Validate() error {
	if a.Referral != nil {
		if err := a.Referral.Validate(); err != nil {
			return err
		}
	}
	return a.ReferringParty.Validate()
}

// MedicaidDetail es el modelo de lo que publica el relay como DetailRecord.
type MedicaidDetail struct {
	EventID            *string `json:"event_id,omitempty"`
	UUID               *string `json:"uuid,omitempty"`
	AttributeName      *string `json:"attribute_name,omitempty"`
	AttributeValue     any     `json:"attribute_value,omitempty"`
	MedicaidDetailType *string `json:"medicaid_detail_type,omitempty"`
	CreatedAt          *string `json:"created_at,omitempty"`
	UpdatedAt          *string `json:"updated_at,omitempty"`
}

func (*MedicaidDetail) EntityType() string { return "MedicaidDetail" }

// TurbocaidApplication es el modelo de lo que publica el relay como ApplicationRecord.
type TurbocaidApplication struct {
	EventID         *string          `json:"event_id,omitempty"`
	UUID            *string          `json:"uuid,omitempty"`
	County          *string          `json:"county,omitempty"`
	State           *State           `json:"state,omitempty"`
	Status          *string          `json:"status,omitempty"`
	MedicaidDetails []MedicaidDetail `json:"medicaid_details,omitempty"`
	CreatedAt       *string          `json:"created_at,omitempty"`
	UpdatedAt       *string          `json:"updated_at,omitempty"`
}

func (*TurbocaidApplication) EntityType() string { return "TurbocaidApplication" }

// UnmarshalJSON acepta los detalles como objetos o como strings con el JSON
// del detalle, que es como los publica el relay.
func (a *TurbocaidApplication) UnmarshalJSON(data []byte) error {
	type plain TurbocaidApplication
	var raw struct {
		plain
		MedicaidDetails []json.RawMessage `json:"medicaid_details"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = TurbocaidApplication(raw.plain)
	a.MedicaidDetails = nil

	for i, item := range raw.MedicaidDetails {
		var blob []byte = item
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			blob = []byte(s)
		}
		var d MedicaidDetail
		if err := json.Unmarshal(blob, &d); err != nil {
			return fmt.Errorf("medicaid_details[%d]: %w", i, err)
		}
		a.MedicaidDetails = append(a.MedicaidDetails, d)
	}
	return nil
}
