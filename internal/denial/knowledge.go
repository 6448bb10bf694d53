// Package denial matches extracted claim denial codes against a static
// knowledge base of appeal intelligence.
package denial

// Entry is one denial code's appeal intelligence. Read-only reference
// data; SuccessProbability is a percentage, DeadlineDays counts from
// the denial date.
type Entry struct {
	Code               string   `json:"code"`
	Reason             string   `json:"reason"`
	Explanation        string   `json:"explanation"`
	SuccessProbability int      `json:"successProbability"`
	DeadlineDays       int      `json:"deadlineDays"`
	RequiredDocuments  []string `json:"requiredDocuments"`
	AppealTemplate     string   `json:"appealTemplate"`
}

// knowledge holds every code we have appeal guidance for. The first
// entry doubles as the default substitute for unrecognized codes.
var knowledge = []Entry{
	{
		Code:               "CO-50",
		Reason:             "Not Medically Necessary",
		Explanation:        "Your insurance company has determined that this procedure does not meet their criteria for medical necessity based on your diagnosis. This is the most common denial reason and is frequently overturned on appeal when additional clinical notes from your doctor are provided.",
		SuccessProbability: 73,
		DeadlineDays:       180,
		RequiredDocuments: []string{
			"Letter of Medical Necessity from your provider",
			"Full clinical chart/visit notes",
		},
		AppealTemplate: "Dear Appeals Department,\n\nI am writing to appeal the denied claim for [Service] on [Date]. The denial reason code was CO-50 (Not Medically Necessary).\n\nEnclosed is a Letter of Medical Necessity from my provider, Dr. [Doctor Name], which clearly outlines why this procedure was essential for treating my condition of [Diagnosis]. Additionally, I have included the clinical notes from my visit that demonstrate conservative treatments were previously attempted and failed.\n\nBased on your own policy guidelines for [Condition], this procedure meets the criteria for coverage. Please reprocess this claim for payment.\n\nSincerely,\n[Your Name]",
	},
	{
		Code:               "CO-16",
		Reason:             "Requires Information",
		Explanation:        "Your insurance company needs more information from your provider to process this claim. This is usually due to a missing modifier, an incomplete diagnosis code, or a request for medical records.",
		SuccessProbability: 85,
		DeadlineDays:       90,
		RequiredDocuments: []string{
			"Requested medical records or corrected claim form code",
		},
		AppealTemplate: "Dear Claims Department,\n\nI am writing regarding the claim for [Service] on [Date], which was denied with code CO-16 requesting additional information.\n\nI have contacted my provider, and they have provided the requested [Name of missing document/information, e.g., clinical notes]. Please find this documentation attached.\n\nPlease review the attached information and reprocess this claim for payment.\n\nSincerely,\n[Your Name]",
	},
	{
		Code:               "CO-97",
		Reason:             "Included in Other Service",
		Explanation:        "Your insurance states this procedure should have been bundled (included) in the payment for another major procedure performed on the same day. This is often a coding error where the provider forgot to use a special 'modifier' to indicate the procedures were distinct and separate.",
		SuccessProbability: 68,
		DeadlineDays:       180,
		RequiredDocuments: []string{
			"Corrected claim with Modifier 59 or 25 (if applicable)",
			"Provider explanation of separate procedures",
		},
		AppealTemplate: "Dear Appeals Department,\n\nI am writing to appeal the denial of [Service] on [Date], denied under code CO-97 (Included in Other Service).\n\nWhile [Service] was performed on the same day as [Primary Procedure], these were distinct, separate services. My provider has issued a corrected claim utilizing [Modifier 25/59] to indicate that this service was significant and separately identifiable from the primary procedure.\n\nPlease review the updated coding and clinical notes, and reprocess this claim for payment.\n\nSincerely,\n[Your Name]",
	},
	{
		Code:               "CO-197",
		Reason:             "Precertification/Authorization/Notification Absent",
		Explanation:        "Your insurance denied this claim because your provider did not get prior approval (prior authorization) before performing the service. While primarily the provider's responsibility, this can sometimes be fought by proving a retroactive 'medical emergency' or appealing a provider error.",
		SuccessProbability: 32,
		DeadlineDays:       180,
		RequiredDocuments: []string{
			"Proof of emergency admission (if applicable)",
			"Retroactive authorization request from provider",
		},
		AppealTemplate: "Dear Appeals Department,\n\nI am writing to appeal the denial for [Service] on [Date], denied with code CO-197 for lack of prior authorization.\n\n[Choose one line below:]\n[Option 1: Emergency] This service was performed under emergency circumstances where obtaining prior authorization was not feasible. Attached are the ER notes supporting the emergent nature of the visit.\n[Option 2: Provider Error] I was not informed by the facility that prior authorization was not obtained. As the patient, I relied on the facility's administrative staff to secure necessary approvals for in-network care.\n\nPlease review the attached documentation and consider a retroactive authorization or reprocessing of this claim.\n\nSincerely,\n[Your Name]",
	},
	{
		Code:               "CO-242",
		Reason:             "Out of Network Provider",
		Explanation:        "Your insurance denied this or paid at a much lower rate because the provider was not in your network. If you were at an IN-NETWORK hospital but were treated by an OUT-OF-NETWORK doctor (like an ER doctor or anesthesiologist) without your consent, you are protected by the No Surprises Act.",
		SuccessProbability: 88,
		DeadlineDays:       180,
		RequiredDocuments: []string{
			"Proof that the facility was In-Network",
			"Mention of the No Surprises Act",
		},
		AppealTemplate: "Dear Appeals Department,\n\nI am appealing the coverage determination for services provided by [Provider Name] on [Date] at [Facility Name].\n\nI intentionally visited an in-network facility ([Facility Name]). I had no choice in the selection of [Provider Name, e.g., the anesthesiologist or ER doctor] who treated me at this facility. Under the federal No Surprises Act, I cannot be held liable for out-of-network balance billing for ancillary services provided at an in-network facility.\n\nTherefore, this claim must be processed at my in-network benefit level, and any balance bill must be canceled.\n\nSincerely,\n[Your Name]",
	},
}

// Codes lists every known denial code in knowledge-base order.
func Codes() []string {
	out := make([]string, len(knowledge))
	for i, e := range knowledge {
		out[i] = e.Code
	}
	return out
}
