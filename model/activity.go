package model

import "sort"

// ActivityCatalog maps a single-character functional category code to its description.
type ActivityCatalog map[string]string

// DefaultActivityCatalog returns the COG functional category descriptions.
func DefaultActivityCatalog() ActivityCatalog {
	return ActivityCatalog{
		"B": "INFORMATION STORAGE AND PROCESSING Chromatin structure and dynamics",
		"C": "METABOLISM Energy production and conversion",
		"E": "METABOLISM Amino acid transport and metabolism",
		"F": "METABOLISM Nucleotide transport and metabolism",
		"G": "METABOLISM Carbohydrate transport and metabolism",
		"H": "METABOLISM Coenzyme transport and metabolism",
		"I": "METABOLISM Lipid transport and metabolism",
		"J": "INFORMATION STORAGE AND PROCESSING Translation, ribosomal structure and biogenesis",
		"K": "INFORMATION STORAGE AND PROCESSING Transcription",
		"L": "INFORMATION STORAGE AND PROCESSING Replication, recombination and repair",
		"O": "CELLULAR PROCESSES AND SIGNALING Posttranslational modification, protein turnover, chaperones",
		"P": "METABOLISM Inorganic ion transport and metabolism",
		"Q": "METABOLISM Secondary metabolites biosynthesis, transport and catabolism",
		"R": "POORLY CHARACTERIZED General function prediction only",
		"S": "POORLY CHARACTERIZED Function unknown",
		"U": "CELLULAR PROCESSES AND SIGNALING Intracellular trafficking, secretion, and vesicular transport",
		"V": "CELLULAR PROCESSES AND SIGNALING Defense mechanisms",
		"W": "CELLULAR PROCESSES AND SIGNALING Extracellular structures",
		"X": "MOBILOME Mobilome: prophages, transposons",
		"Z": "CELLULAR PROCESSES AND SIGNALING Cytoskeleton",
	}
}

// Describe returns the description for code. Codes outside the catalog get a
// placeholder naming the code so distinct codes never share a description.
func (c ActivityCatalog) Describe(code string) string {
	if desc, ok := c[code]; ok {
		return desc
	}
	return "UNCATEGORIZED Activity code " + code
}

// Codes returns the catalog codes in alphabetical order.
func (c ActivityCatalog) Codes() []string {
	codes := make([]string, 0, len(c))
	for code := range c {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
