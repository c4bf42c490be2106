package dataset

// Pools are the domain-labeled template pools records are filled from.
// Distinct legitimate vs. suspicious pools per field, selected by the
// record's pre-assigned class.
type Pools struct {
	LegitimateSubjects []string
	FraudSubjects      []string
	LegitimateBodies   []string
	FraudBodies        []string
	LegitimateDomains  []string
	FraudDomains       []string
	UrgencyKeywords    []string
}

// DefaultPools returns the built-in template pools.
func DefaultPools() Pools {
	return Pools{
		LegitimateSubjects: []string{
			"Q4 Budget Review - Action Items",
			"Weekly Status Update",
			"Meeting Notes - Project Sync",
			"Invoice #12345 for your records",
			"Team Building Event RSVP",
			"Performance Review Schedule",
			"Client Feedback Summary",
			"Holiday Schedule Reminder",
			"IT Maintenance Window Notice",
			"New Policy Documentation",
		},
		FraudSubjects: []string{
			"URGENT: Account Suspended - Verify Now!",
			"IMMEDIATE ACTION REQUIRED - Payment Failed",
			"Final Notice: Your account will be deleted",
			"Security Alert: Unusual activity detected",
			"You have won $500,000 - Claim NOW",
			"VERIFY YOUR IDENTITY IMMEDIATELY",
			"Your password expires in 24 hours",
			"Unauthorized login attempt - Action Required",
			"CEO Request: Urgent Wire Transfer Needed",
			"Tax Refund Pending - Confirm Details",
		},
		LegitimateBodies: []string{
			"Hi team, please find attached the quarterly report. Let me know if you have questions.",
			"As discussed in our last meeting, here are the action items for this week.",
			"Thank you for your recent purchase. Your invoice is attached for your records.",
			"This is a reminder about our upcoming team meeting scheduled for Friday.",
			"Please review the attached document and provide your feedback by EOD.",
		},
		FraudBodies: []string{
			"Dear valued customer, your account requires immediate verification. Click the link below.",
			"We detected suspicious activity on your account. Verify your identity now to avoid suspension.",
			"Your payment method has been declined. Update your information immediately to continue service.",
			"As CEO, I need you to process this urgent wire transfer. Keep this confidential.",
			"Congratulations! You have been selected for a special prize. Click here to claim.",
		},
		LegitimateDomains: []string{
			"company.com",
			"corp.net",
			"business.org",
			"enterprise.io",
		},
		FraudDomains: []string{
			"c0mpany.com",
			"corp-secure.net",
			"busines5.org",
			"enterprize.io",
		},
		UrgencyKeywords: []string{
			"URGENT",
			"IMMEDIATE",
			"ASAP",
			"Final Notice",
			"Action Required",
			"Verify Now",
			"Suspended",
		},
	}
}
