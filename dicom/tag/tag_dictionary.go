package tag

import "github.com/go-radx/dicomforward/dicom/vr"

// Well-known tag constants used throughout the dicom package and its
// sub-packages. These mirror PS3.6's registry for the subset of elements
// this module actually reads or writes (file meta information, image pixel
// description, patient/study/series identifiers, and the attributes touched
// by the de-identification profiles).
var (
	FileMetaInformationGroupLength = New(0x0002, 0x0000)
	FileMetaInformationVersion     = New(0x0002, 0x0001)
	MediaStorageSOPClassUID        = New(0x0002, 0x0002)
	MediaStorageSOPInstanceUID     = New(0x0002, 0x0003)
	TransferSyntaxUID              = New(0x0002, 0x0010)
	ImplementationClassUID         = New(0x0002, 0x0012)
	ImplementationVersionName      = New(0x0002, 0x0013)

	SpecificCharacterSet          = New(0x0008, 0x0005)
	InstanceCreationDate          = New(0x0008, 0x0012)
	InstanceCreationTime          = New(0x0008, 0x0013)
	InstanceCreatorUID            = New(0x0008, 0x0014)
	SOPClassUID                   = New(0x0008, 0x0016)
	SOPInstanceUID                = New(0x0008, 0x0018)
	StudyDate                     = New(0x0008, 0x0020)
	SeriesDate                    = New(0x0008, 0x0021)
	AcquisitionDate               = New(0x0008, 0x0022)
	ContentDate                   = New(0x0008, 0x0023)
	StudyTime                     = New(0x0008, 0x0030)
	SeriesTime                    = New(0x0008, 0x0031)
	AcquisitionTime               = New(0x0008, 0x0032)
	ContentTime                   = New(0x0008, 0x0033)
	AcquisitionDateTime           = New(0x0008, 0x002A)
	Modality                      = New(0x0008, 0x0060)
	Manufacturer                  = New(0x0008, 0x0070)
	InstitutionName               = New(0x0008, 0x0080)
	InstitutionAddress            = New(0x0008, 0x0081)
	ReferringPhysicianName        = New(0x0008, 0x0090)
	ReferringPhysicianAddress     = New(0x0008, 0x0092)
	ReferringPhysicianTelephoneNumbers = New(0x0008, 0x0094)
	TimezoneOffsetFromUTC         = New(0x0008, 0x0201)
	StationName                   = New(0x0008, 0x1010)
	StudyDescription              = New(0x0008, 0x1030)
	SeriesDescription             = New(0x0008, 0x103E)
	InstitutionalDepartmentName   = New(0x0008, 0x1040)
	PhysiciansOfRecord            = New(0x0008, 0x1048)
	PerformingPhysicianName       = New(0x0008, 0x1050)
	NameOfPhysiciansReadingStudy  = New(0x0008, 0x1060)
	OperatorsName                 = New(0x0008, 0x1070)
	AdmittingDiagnosesDescription = New(0x0008, 0x1080)
	ReferencedStudySequence       = New(0x0008, 0x1110)
	DerivationDescription         = New(0x0008, 0x2111)
	ConsultingPhysicianName       = New(0x0008, 0x009C)
	AccessionNumber               = New(0x0008, 0x0050)
	IssuerOfAccessionNumberSequence = New(0x0008, 0x0051)

	PatientName                 = New(0x0010, 0x0010)
	PatientID                   = New(0x0010, 0x0020)
	PatientBirthDate            = New(0x0010, 0x0030)
	PatientBirthTime            = New(0x0010, 0x0032)
	PatientSex                  = New(0x0010, 0x0040)
	OtherPatientIDs             = New(0x0010, 0x1000)
	OtherPatientNames           = New(0x0010, 0x1001)
	PatientBirthName            = New(0x0010, 0x1005)
	PatientAge                  = New(0x0010, 0x1010)
	PatientSize                 = New(0x0010, 0x1020)
	PatientWeight               = New(0x0010, 0x1030)
	MedicalRecordLocator        = New(0x0010, 0x1090)
	MilitaryRank                = New(0x0010, 0x1080)
	BranchOfService             = New(0x0010, 0x1081)
	PatientMotherBirthName      = New(0x0010, 0x1060)
	CountryOfResidence          = New(0x0010, 0x2150)
	RegionOfResidence           = New(0x0010, 0x2152)
	PersonTelephoneNumbers      = New(0x0010, 0x2154)
	PersonAddress               = New(0x0010, 0x2155)
	EthnicGroup                 = New(0x0010, 0x2160)
	Occupation                  = New(0x0010, 0x2180)
	PatientComments             = New(0x0010, 0x4000)
	AdditionalPatientHistory    = New(0x0010, 0x21B0)
	PatientSpeciesDescription   = New(0x0010, 0x2201)
	PatientBreedDescription     = New(0x0010, 0x2292)
	PatientSexNeutered          = New(0x0010, 0x2203)
	ResponsiblePerson           = New(0x0010, 0x2297)
	ResponsibleOrganization     = New(0x0010, 0x2299)
	PatientIdentityRemoved      = New(0x0012, 0x0062)

	DataCollectionDiameter = New(0x0018, 0x0090)
	KVP                    = New(0x0018, 0x0060)
	ProtocolName           = New(0x0018, 0x1030)
	DeviceSerialNumber     = New(0x0018, 0x1000)
	ExposureTime           = New(0x0018, 0x1150)
	ConvolutionKernel      = New(0x0018, 0x1210)

	StudyInstanceUID  = New(0x0020, 0x000D)
	SeriesInstanceUID = New(0x0020, 0x000E)
	StudyID           = New(0x0020, 0x0010)
	SeriesNumber      = New(0x0020, 0x0011)
	InstanceNumber    = New(0x0020, 0x0013)
	ImageComments     = New(0x0020, 0x4000)
	FrameComments     = New(0x0020, 0x9158)

	SamplesPerPixel             = New(0x0028, 0x0002)
	PhotometricInterpretation   = New(0x0028, 0x0004)
	PlanarConfiguration         = New(0x0028, 0x0006)
	NumberOfFrames              = New(0x0028, 0x0008)
	Rows                        = New(0x0028, 0x0010)
	Columns                     = New(0x0028, 0x0011)
	BitsAllocated               = New(0x0028, 0x0100)
	BitsStored                  = New(0x0028, 0x0101)
	HighBit                     = New(0x0028, 0x0102)
	PixelRepresentation         = New(0x0028, 0x0103)
	RescaleIntercept            = New(0x0028, 0x1052)
	RescaleSlope                = New(0x0028, 0x1053)
	RescaleType                 = New(0x0028, 0x1054)
	LossyImageCompression       = New(0x0028, 0x2110)
	LossyImageCompressionMethod = New(0x0028, 0x2114)

	RedPaletteColorLookupTableDescriptor      = New(0x0028, 0x1101)
	GreenPaletteColorLookupTableDescriptor    = New(0x0028, 0x1102)
	BluePaletteColorLookupTableDescriptor     = New(0x0028, 0x1103)
	RedPaletteColorLookupTableData            = New(0x0028, 0x1201)
	GreenPaletteColorLookupTableData          = New(0x0028, 0x1202)
	BluePaletteColorLookupTableData           = New(0x0028, 0x1203)
	SegmentedRedPaletteColorLookupTableData   = New(0x0028, 0x1221)
	SegmentedGreenPaletteColorLookupTableData = New(0x0028, 0x1222)
	SegmentedBluePaletteColorLookupTableData  = New(0x0028, 0x1223)

	CurrentPatientLocation  = New(0x0038, 0x0300)
	PatientInstitutionResidence = New(0x0038, 0x0400)

	RequestingPhysician              = New(0x0032, 0x1032)
	RequestingService                = New(0x0032, 0x1033)
	RequestedProcedureDescription    = New(0x0032, 0x1060)
	PerformedProcedureStepStartDate  = New(0x0040, 0x0244)
	PerformedProcedureStepStartTime  = New(0x0040, 0x0245)
	PerformedProcedureStepEndDate    = New(0x0040, 0x0250)
	PerformedProcedureStepEndTime    = New(0x0040, 0x0251)
	PerformedProcedureStepDescription = New(0x0040, 0x0254)
	RequestAttributesSequence       = New(0x0040, 0x0275)
	TextComments                    = New(0x0040, 0xA160)

	ModifiedAttributesSequence = New(0x0400, 0x0550)
	OriginalAttributesSequence = New(0x0400, 0x0561)

	PixelData             = New(0x7FE0, 0x0010)
	DigitalSignaturesSequence = New(0xFFFA, 0xFFFA)
)

// entry is a compact row used only to build TagDict below.
type entry struct {
	t       Tag
	vrs     []vr.VR
	name    string
	keyword string
	vm      string
}

// TagDict is the standard dictionary consulted by Find, FindByKeyword and
// FindByName. It covers the attributes this module reads, writes, or
// de-identifies; it is not a full PS3.6 registry.
var TagDict = buildTagDict()

func buildTagDict() map[Tag]Info {
	rows := []entry{
		{FileMetaInformationGroupLength, []vr.VR{vr.UnsignedLong}, "File Meta Information Group Length", "FileMetaInformationGroupLength", "1"},
		{FileMetaInformationVersion, []vr.VR{vr.OtherByte}, "File Meta Information Version", "FileMetaInformationVersion", "1"},
		{MediaStorageSOPClassUID, []vr.VR{vr.UniqueIdentifier}, "Media Storage SOP Class UID", "MediaStorageSOPClassUID", "1"},
		{MediaStorageSOPInstanceUID, []vr.VR{vr.UniqueIdentifier}, "Media Storage SOP Instance UID", "MediaStorageSOPInstanceUID", "1"},
		{TransferSyntaxUID, []vr.VR{vr.UniqueIdentifier}, "Transfer Syntax UID", "TransferSyntaxUID", "1"},
		{ImplementationClassUID, []vr.VR{vr.UniqueIdentifier}, "Implementation Class UID", "ImplementationClassUID", "1"},
		{ImplementationVersionName, []vr.VR{vr.ShortString}, "Implementation Version Name", "ImplementationVersionName", "1"},

		{SpecificCharacterSet, []vr.VR{vr.CodeString}, "Specific Character Set", "SpecificCharacterSet", "1-n"},
		{InstanceCreationDate, []vr.VR{vr.Date}, "Instance Creation Date", "InstanceCreationDate", "1"},
		{InstanceCreationTime, []vr.VR{vr.Time}, "Instance Creation Time", "InstanceCreationTime", "1"},
		{InstanceCreatorUID, []vr.VR{vr.UniqueIdentifier}, "Instance Creator UID", "InstanceCreatorUID", "1"},
		{SOPClassUID, []vr.VR{vr.UniqueIdentifier}, "SOP Class UID", "SOPClassUID", "1"},
		{SOPInstanceUID, []vr.VR{vr.UniqueIdentifier}, "SOP Instance UID", "SOPInstanceUID", "1"},
		{StudyDate, []vr.VR{vr.Date}, "Study Date", "StudyDate", "1"},
		{SeriesDate, []vr.VR{vr.Date}, "Series Date", "SeriesDate", "1"},
		{AcquisitionDate, []vr.VR{vr.Date}, "Acquisition Date", "AcquisitionDate", "1"},
		{ContentDate, []vr.VR{vr.Date}, "Content Date", "ContentDate", "1"},
		{StudyTime, []vr.VR{vr.Time}, "Study Time", "StudyTime", "1"},
		{SeriesTime, []vr.VR{vr.Time}, "Series Time", "SeriesTime", "1"},
		{AcquisitionTime, []vr.VR{vr.Time}, "Acquisition Time", "AcquisitionTime", "1"},
		{ContentTime, []vr.VR{vr.Time}, "Content Time", "ContentTime", "1"},
		{AcquisitionDateTime, []vr.VR{vr.DateTime}, "Acquisition DateTime", "AcquisitionDateTime", "1"},
		{Modality, []vr.VR{vr.CodeString}, "Modality", "Modality", "1"},
		{Manufacturer, []vr.VR{vr.LongString}, "Manufacturer", "Manufacturer", "1"},
		{InstitutionName, []vr.VR{vr.LongString}, "Institution Name", "InstitutionName", "1"},
		{InstitutionAddress, []vr.VR{vr.ShortText}, "Institution Address", "InstitutionAddress", "1"},
		{ReferringPhysicianName, []vr.VR{vr.PersonName}, "Referring Physician's Name", "ReferringPhysicianName", "1"},
		{ReferringPhysicianAddress, []vr.VR{vr.ShortText}, "Referring Physician's Address", "ReferringPhysicianAddress", "1"},
		{ReferringPhysicianTelephoneNumbers, []vr.VR{vr.ShortString}, "Referring Physician's Telephone Numbers", "ReferringPhysicianTelephoneNumbers", "1-n"},
		{TimezoneOffsetFromUTC, []vr.VR{vr.ShortString}, "Timezone Offset From UTC", "TimezoneOffsetFromUTC", "1"},
		{StationName, []vr.VR{vr.ShortString}, "Station Name", "StationName", "1"},
		{StudyDescription, []vr.VR{vr.LongString}, "Study Description", "StudyDescription", "1"},
		{SeriesDescription, []vr.VR{vr.LongString}, "Series Description", "SeriesDescription", "1"},
		{InstitutionalDepartmentName, []vr.VR{vr.LongString}, "Institutional Department Name", "InstitutionalDepartmentName", "1"},
		{PhysiciansOfRecord, []vr.VR{vr.PersonName}, "Physician(s) of Record", "PhysiciansOfRecord", "1-n"},
		{PerformingPhysicianName, []vr.VR{vr.PersonName}, "Performing Physician's Name", "PerformingPhysicianName", "1-n"},
		{NameOfPhysiciansReadingStudy, []vr.VR{vr.PersonName}, "Name of Physician(s) Reading Study", "NameOfPhysiciansReadingStudy", "1-n"},
		{OperatorsName, []vr.VR{vr.PersonName}, "Operators' Name", "OperatorsName", "1-n"},
		{AdmittingDiagnosesDescription, []vr.VR{vr.LongString}, "Admitting Diagnoses Description", "AdmittingDiagnosesDescription", "1-n"},
		{ReferencedStudySequence, []vr.VR{vr.SequenceOfItems}, "Referenced Study Sequence", "ReferencedStudySequence", "1-n"},
		{DerivationDescription, []vr.VR{vr.ShortText}, "Derivation Description", "DerivationDescription", "1"},
		{ConsultingPhysicianName, []vr.VR{vr.PersonName}, "Consulting Physician's Name", "ConsultingPhysicianName", "1-n"},
		{AccessionNumber, []vr.VR{vr.ShortString}, "Accession Number", "AccessionNumber", "1"},
		{IssuerOfAccessionNumberSequence, []vr.VR{vr.SequenceOfItems}, "Issuer of Accession Number Sequence", "IssuerOfAccessionNumberSequence", "1"},

		{PatientName, []vr.VR{vr.PersonName}, "Patient's Name", "PatientName", "1"},
		{PatientID, []vr.VR{vr.LongString}, "Patient ID", "PatientID", "1"},
		{PatientBirthDate, []vr.VR{vr.Date}, "Patient's Birth Date", "PatientBirthDate", "1"},
		{PatientBirthTime, []vr.VR{vr.Time}, "Patient's Birth Time", "PatientBirthTime", "1"},
		{PatientSex, []vr.VR{vr.CodeString}, "Patient's Sex", "PatientSex", "1"},
		{OtherPatientIDs, []vr.VR{vr.LongString}, "Other Patient IDs", "OtherPatientIDs", "1-n"},
		{OtherPatientNames, []vr.VR{vr.PersonName}, "Other Patient Names", "OtherPatientNames", "1-n"},
		{PatientBirthName, []vr.VR{vr.PersonName}, "Patient's Birth Name", "PatientBirthName", "1"},
		{PatientAge, []vr.VR{vr.AgeString}, "Patient's Age", "PatientAge", "1"},
		{PatientSize, []vr.VR{vr.DecimalString}, "Patient's Size", "PatientSize", "1"},
		{PatientWeight, []vr.VR{vr.DecimalString}, "Patient's Weight", "PatientWeight", "1"},
		{MedicalRecordLocator, []vr.VR{vr.LongString}, "Medical Record Locator", "MedicalRecordLocator", "1"},
		{MilitaryRank, []vr.VR{vr.LongString}, "Military Rank", "MilitaryRank", "1"},
		{BranchOfService, []vr.VR{vr.LongString}, "Branch of Service", "BranchOfService", "1"},
		{PatientMotherBirthName, []vr.VR{vr.PersonName}, "Patient's Mother's Birth Name", "PatientMotherBirthName", "1"},
		{CountryOfResidence, []vr.VR{vr.LongString}, "Country of Residence", "CountryOfResidence", "1"},
		{RegionOfResidence, []vr.VR{vr.LongString}, "Region of Residence", "RegionOfResidence", "1-n"},
		{PersonTelephoneNumbers, []vr.VR{vr.ShortString}, "Patient's Telephone Numbers", "PersonTelephoneNumbers", "1-n"},
		{PersonAddress, []vr.VR{vr.LongText}, "Patient's Address", "PersonAddress", "1"},
		{EthnicGroup, []vr.VR{vr.ShortString}, "Ethnic Group", "EthnicGroup", "1"},
		{Occupation, []vr.VR{vr.ShortString}, "Occupation", "Occupation", "1"},
		{PatientComments, []vr.VR{vr.LongText}, "Patient Comments", "PatientComments", "1"},
		{AdditionalPatientHistory, []vr.VR{vr.LongText}, "Additional Patient History", "AdditionalPatientHistory", "1"},
		{PatientSpeciesDescription, []vr.VR{vr.LongString}, "Patient Species Description", "PatientSpeciesDescription", "1"},
		{PatientBreedDescription, []vr.VR{vr.ShortString}, "Patient Breed Description", "PatientBreedDescription", "1"},
		{PatientSexNeutered, []vr.VR{vr.CodeString}, "Patient's Sex Neutered", "PatientSexNeutered", "1"},
		{ResponsiblePerson, []vr.VR{vr.PersonName}, "Responsible Person", "ResponsiblePerson", "1"},
		{ResponsibleOrganization, []vr.VR{vr.LongString}, "Responsible Organization", "ResponsibleOrganization", "1"},
		{PatientIdentityRemoved, []vr.VR{vr.CodeString}, "Patient Identity Removed", "PatientIdentityRemoved", "1"},

		{DataCollectionDiameter, []vr.VR{vr.DecimalString}, "Data Collection Diameter", "DataCollectionDiameter", "1"},
		{KVP, []vr.VR{vr.DecimalString}, "KVP", "KVP", "1"},
		{ProtocolName, []vr.VR{vr.LongString}, "Protocol Name", "ProtocolName", "1"},
		{DeviceSerialNumber, []vr.VR{vr.LongString}, "Device Serial Number", "DeviceSerialNumber", "1"},
		{ExposureTime, []vr.VR{vr.IntegerString}, "Exposure Time", "ExposureTime", "1"},
		{ConvolutionKernel, []vr.VR{vr.ShortString}, "Convolution Kernel", "ConvolutionKernel", "1-n"},

		{StudyInstanceUID, []vr.VR{vr.UniqueIdentifier}, "Study Instance UID", "StudyInstanceUID", "1"},
		{SeriesInstanceUID, []vr.VR{vr.UniqueIdentifier}, "Series Instance UID", "SeriesInstanceUID", "1"},
		{StudyID, []vr.VR{vr.ShortString}, "Study ID", "StudyID", "1"},
		{SeriesNumber, []vr.VR{vr.IntegerString}, "Series Number", "SeriesNumber", "1"},
		{InstanceNumber, []vr.VR{vr.IntegerString}, "Instance Number", "InstanceNumber", "1"},
		{ImageComments, []vr.VR{vr.LongText}, "Image Comments", "ImageComments", "1"},
		{FrameComments, []vr.VR{vr.LongText}, "Frame Comments", "FrameComments", "1"},

		{SamplesPerPixel, []vr.VR{vr.UnsignedShort}, "Samples per Pixel", "SamplesPerPixel", "1"},
		{PhotometricInterpretation, []vr.VR{vr.CodeString}, "Photometric Interpretation", "PhotometricInterpretation", "1"},
		{PlanarConfiguration, []vr.VR{vr.UnsignedShort}, "Planar Configuration", "PlanarConfiguration", "1"},
		{NumberOfFrames, []vr.VR{vr.IntegerString}, "Number of Frames", "NumberOfFrames", "1"},
		{Rows, []vr.VR{vr.UnsignedShort}, "Rows", "Rows", "1"},
		{Columns, []vr.VR{vr.UnsignedShort}, "Columns", "Columns", "1"},
		{BitsAllocated, []vr.VR{vr.UnsignedShort}, "Bits Allocated", "BitsAllocated", "1"},
		{BitsStored, []vr.VR{vr.UnsignedShort}, "Bits Stored", "BitsStored", "1"},
		{HighBit, []vr.VR{vr.UnsignedShort}, "High Bit", "HighBit", "1"},
		{PixelRepresentation, []vr.VR{vr.UnsignedShort}, "Pixel Representation", "PixelRepresentation", "1"},
		{RescaleIntercept, []vr.VR{vr.DecimalString}, "Rescale Intercept", "RescaleIntercept", "1"},
		{RescaleSlope, []vr.VR{vr.DecimalString}, "Rescale Slope", "RescaleSlope", "1"},
		{RescaleType, []vr.VR{vr.LongString}, "Rescale Type", "RescaleType", "1"},
		{LossyImageCompression, []vr.VR{vr.CodeString}, "Lossy Image Compression", "LossyImageCompression", "1"},
		{LossyImageCompressionMethod, []vr.VR{vr.CodeString}, "Lossy Image Compression Method", "LossyImageCompressionMethod", "1-n"},

		{RedPaletteColorLookupTableDescriptor, []vr.VR{vr.UnsignedShort}, "Red Palette Color Lookup Table Descriptor", "RedPaletteColorLookupTableDescriptor", "3"},
		{GreenPaletteColorLookupTableDescriptor, []vr.VR{vr.UnsignedShort}, "Green Palette Color Lookup Table Descriptor", "GreenPaletteColorLookupTableDescriptor", "3"},
		{BluePaletteColorLookupTableDescriptor, []vr.VR{vr.UnsignedShort}, "Blue Palette Color Lookup Table Descriptor", "BluePaletteColorLookupTableDescriptor", "3"},
		{RedPaletteColorLookupTableData, []vr.VR{vr.OtherWord}, "Red Palette Color Lookup Table Data", "RedPaletteColorLookupTableData", "1"},
		{GreenPaletteColorLookupTableData, []vr.VR{vr.OtherWord}, "Green Palette Color Lookup Table Data", "GreenPaletteColorLookupTableData", "1"},
		{BluePaletteColorLookupTableData, []vr.VR{vr.OtherWord}, "Blue Palette Color Lookup Table Data", "BluePaletteColorLookupTableData", "1"},
		{SegmentedRedPaletteColorLookupTableData, []vr.VR{vr.OtherWord}, "Segmented Red Palette Color Lookup Table Data", "SegmentedRedPaletteColorLookupTableData", "1"},
		{SegmentedGreenPaletteColorLookupTableData, []vr.VR{vr.OtherWord}, "Segmented Green Palette Color Lookup Table Data", "SegmentedGreenPaletteColorLookupTableData", "1"},
		{SegmentedBluePaletteColorLookupTableData, []vr.VR{vr.OtherWord}, "Segmented Blue Palette Color Lookup Table Data", "SegmentedBluePaletteColorLookupTableData", "1"},

		{CurrentPatientLocation, []vr.VR{vr.LongString}, "Current Patient Location", "CurrentPatientLocation", "1"},
		{PatientInstitutionResidence, []vr.VR{vr.LongString}, "Patient's Institution Residence", "PatientInstitutionResidence", "1"},

		{RequestingPhysician, []vr.VR{vr.PersonName}, "Requesting Physician", "RequestingPhysician", "1"},
		{RequestingService, []vr.VR{vr.LongString}, "Requesting Service", "RequestingService", "1"},
		{RequestedProcedureDescription, []vr.VR{vr.LongString}, "Requested Procedure Description", "RequestedProcedureDescription", "1"},
		{PerformedProcedureStepStartDate, []vr.VR{vr.Date}, "Performed Procedure Step Start Date", "PerformedProcedureStepStartDate", "1"},
		{PerformedProcedureStepStartTime, []vr.VR{vr.Time}, "Performed Procedure Step Start Time", "PerformedProcedureStepStartTime", "1"},
		{PerformedProcedureStepEndDate, []vr.VR{vr.Date}, "Performed Procedure Step End Date", "PerformedProcedureStepEndDate", "1"},
		{PerformedProcedureStepEndTime, []vr.VR{vr.Time}, "Performed Procedure Step End Time", "PerformedProcedureStepEndTime", "1"},
		{PerformedProcedureStepDescription, []vr.VR{vr.LongString}, "Performed Procedure Step Description", "PerformedProcedureStepDescription", "1"},
		{RequestAttributesSequence, []vr.VR{vr.SequenceOfItems}, "Request Attributes Sequence", "RequestAttributesSequence", "1-n"},
		{TextComments, []vr.VR{vr.ShortText}, "Text Comments", "TextComments", "1"},

		{ModifiedAttributesSequence, []vr.VR{vr.SequenceOfItems}, "Modified Attributes Sequence", "ModifiedAttributesSequence", "1"},
		{OriginalAttributesSequence, []vr.VR{vr.SequenceOfItems}, "Original Attributes Sequence", "OriginalAttributesSequence", "1"},

		{PixelData, []vr.VR{vr.OtherByte, vr.OtherWord}, "Pixel Data", "PixelData", "1"},
		{DigitalSignaturesSequence, []vr.VR{vr.SequenceOfItems}, "Digital Signatures Sequence", "DigitalSignaturesSequence", "1-n"},
	}

	dict := make(map[Tag]Info, len(rows))
	for _, r := range rows {
		dict[r.t] = Info{Tag: r.t, VRs: r.vrs, Name: r.name, Keyword: r.keyword, VM: r.vm}
	}
	return dict
}
