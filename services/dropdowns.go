package services

// GateTypeOptions returns the list of gate type options.
var GateTypeOptions = []string{
	"swing",
	"sliding",
	"cantilever",
	"bi-fold",
	"pedestrian",
}

// GateStyleOptions returns the list of gate style options.
var GateStyleOptions = []string{
	"basic",
	"standard",
	"ornamental",
	"custom",
}

// MaterialOptions returns the list of gate material options.
var MaterialOptions = []string{
	"steel",
	"aluminum",
	"wrought_iron",
	"wood",
	"chain_link",
}

// AutomationOptions returns the list of automation options.
var AutomationOptions = []string{
	"none",
	"single_swing",
	"dual_swing",
	"slide",
}

// AccessControlOptions returns the list of access control options.
var AccessControlOptions = []string{
	"none",
	"keypad",
	"remote",
	"intercom",
	"full_system",
}

// GroundTypeOptions returns the list of ground type options.
var GroundTypeOptions = []string{
	"concrete",
	"asphalt",
	"gravel",
	"dirt",
}

// SlopeOptions returns the list of slope options.
var SlopeOptions = []string{
	"flat",
	"slight",
	"moderate",
	"steep",
}

// QuoteStatusOptions returns the list of quote status options.
var QuoteStatusOptions = []string{
	"draft",
	"sent",
	"accepted",
	"declined",
}

// MaterialCategoryOptions returns the list of price-list categories.
var MaterialCategoryOptions = []string{
	"gates",
	"hardware",
	"operators",
	"access_control",
	"electrical",
	"misc",
}
