package entities

import "regexp"

// Drug is a canonical drug identity with alias strings used for matching.
// Reference data, loaded once and never mutated at runtime.
type Drug struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

// Event is a canonical adverse-event category with keyword aliases and an
// optional MedDRA preferred term.
type Event struct {
	Name       string   `json:"name"`
	Aliases    []string `json:"aliases"`
	MedDRATerm string   `json:"meddraTerm,omitempty"`
}

var drugDictionary = []Drug{
	{Name: "bortezomib", Aliases: []string{"bortezomib", "velcade"}},
	{Name: "metoprolol", Aliases: []string{"metoprolol", "lopressor"}},
	{Name: "rituximab", Aliases: []string{"rituximab", "rituxan"}},
	{Name: "simvastatin", Aliases: []string{"simvastatin", "zocor"}},
	{Name: "paclitaxel", Aliases: []string{"paclitaxel", "taxol"}},
	{Name: "cisplatin", Aliases: []string{"cisplatin", "platinol"}},
	{Name: "doxorubicin", Aliases: []string{"doxorubicin", "adriamycin"}},
	{Name: "methotrexate", Aliases: []string{"methotrexate", "mtx"}},
}

var eventDictionary = []Event{
	{Name: "hearing loss", Aliases: []string{"hearing loss", "deafness"}, MedDRATerm: "Deafness"},
	{Name: "neuropathy", Aliases: []string{"neuropathy", "nerve damage"}, MedDRATerm: "Neuropathy peripheral"},
	{Name: "cardiotoxicity", Aliases: []string{"cardiotoxicity", "heart damage"}, MedDRATerm: "Cardiomyopathy"},
	{Name: "nephrotoxicity", Aliases: []string{"nephrotoxicity", "kidney damage"}, MedDRATerm: "Acute kidney injury"},
	{Name: "hepatotoxicity", Aliases: []string{"hepatotoxicity", "liver damage"}, MedDRATerm: "Hepatic necrosis"},
	{Name: "thrombocytopenia", Aliases: []string{"thrombocytopenia"}, MedDRATerm: "Thrombocytopenia"},
	{Name: "anemia", Aliases: []string{"anemia"}, MedDRATerm: "Anaemia"},
	{Name: "nausea", Aliases: []string{"nausea"}, MedDRATerm: "Nausea"},
	{Name: "vomiting", Aliases: []string{"vomiting"}, MedDRATerm: "Vomiting"},
	{Name: "diarrhea", Aliases: []string{"diarrhea"}, MedDRATerm: "Diarrhoea"},
	{Name: "rash", Aliases: []string{"rash"}, MedDRATerm: "Rash"},
	{Name: "cataract", Aliases: []string{"cataract", "cataracts"}, MedDRATerm: "Cataract"},
	{Name: "glaucoma", Aliases: []string{"glaucoma"}, MedDRATerm: "Glaucoma"},
	{Name: "visual impairment", Aliases: []string{"visual impairment", "blurred vision"}, MedDRATerm: "Visual impairment"},
}

// drugNamePatterns catch suffix-family drug names the dictionary misses
// (monoclonal antibodies, kinase inhibitors, statins, ...).
var drugNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b([A-Z][a-z]+(?:mab|nib|prazole|statin|mycin|cillin|cycline|olol|pril|sartan|tidine|zole|dronate))\b`),
	regexp.MustCompile(`\b(Interferon\s+Beta-\d+[A-Za-z]?)\b`),
	regexp.MustCompile(`\b(Sodium\s+[A-Z][a-z]+)\b`),
}

var comorbidityKeywords = []string{
	"diabetes", "hypertension", "cancer", "infection", "renal", "hepatic", "cardiac",
}
