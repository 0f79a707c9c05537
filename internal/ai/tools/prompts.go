package tools

// Prompt templates. Each instructs the model to answer with bare JSON
// in a fixed shape; the interpreter still tolerates fenced or wrapped
// replies when the model ignores the instruction.

const highRiskPrompt = `
IMPORTANT: You must respond with ONLY valid JSON, no additional text, explanations, or markdown formatting.

As a QMS expert, analyze the audit data and identify high-risk events. Return ONLY this JSON structure:

{
    "high_risk_audits": [
        {
            "audit_id": "string",
            "risk_score": 8,
            "risk_factors": ["Regulatory audit", "Critical materials"],
            "recommendations": ["Immediate review required"]
        }
    ],
    "summary": "Brief summary of findings",
    "total_high_risk": 3
}

Query: %s
Audit Data: %s

Criteria for high-risk:
- Regulatory audits (score 9-10)
- Supplier/Vendor audits with critical materials (score 7-8)
- Overdue or delayed audits (score 6-8)
- Audits with broad scope (score 6-7)
- Multi-site or international audits (score 5-7)

Return only the JSON response:
`

const openEventsPrompt = `
IMPORTANT: Respond with ONLY valid JSON, no markdown or additional text.

Analyze open audits and return this exact JSON structure:

{
    "executive_summary": "Brief summary of open audits",
    "breakdown": {
        "by_type": {"Internal": 5, "Regulatory": 2},
        "by_status": {"Planned": 3, "In Progress": 4}
    },
    "upcoming_deadlines": ["Audit AUD-2025-001 due Dec 15", "Audit AUD-2025-002 due Jan 10"],
    "resource_insights": "Team allocation and workload insights",
    "key_concerns": ["Concern 1", "Concern 2"],
    "total_open": %d
}

Query: %s
Open Audits Data: %s

Return only JSON:
`

const nextStepsPrompt = `
IMPORTANT: Return ONLY valid JSON, no markdown or explanations.

Provide recommendations for this audit. Return this exact JSON structure:

{
    "immediate_actions": ["Action 1", "Action 2"],
    "medium_term_actions": ["Action 1", "Action 2"],
    "long_term_considerations": ["Consideration 1"],
    "risk_mitigation": ["Risk strategy 1"],
    "resource_requirements": ["Resource need 1"],
    "key_stakeholders": ["Stakeholder 1"],
    "timeline_recommendations": "Timeline guidance"
}

Query: %s
Audit: %s

Return only JSON:
`

const trendsPrompt = `
IMPORTANT: Return ONLY valid JSON with no additional text.

Analyze trends and return this exact JSON structure:

{
    "frequency_trends": "Trend description",
    "type_distribution": {"Internal": 45, "Regulatory": 30, "Supplier": 25},
    "geographic_distribution": {"US": 40, "Europe": 35, "Asia": 25},
    "auditor_workload": {"John Smith": 12, "Jane Doe": 8},
    "seasonal_patterns": "Pattern description",
    "completion_metrics": {"average_days": 14, "completion_rate": 85},
    "risk_areas": ["Risk area 1", "Risk area 2"],
    "recommendations": ["Recommendation 1", "Recommendation 2"]
}

Query: %s
Data: %s

Return only JSON:
`

const notificationPrompt = `
IMPORTANT: Return ONLY valid JSON with no markdown formatting.

Generate notifications and return this exact JSON structure:

{
    "notifications": {
        "commencement": {
            "subject": "Audit Commencement Notice",
            "body": "Email body text",
            "recipients": ["primary.contact@company.com"]
        },
        "completion": {
            "subject": "Audit Completion Notice",
            "body": "Email body text",
            "recipients": ["primary.contact@company.com"]
        },
        "follow_up": {
            "subject": "Action Items Follow-up",
            "body": "Email body text",
            "recipients": ["primary.contact@company.com"]
        },
        "closure": {
            "subject": "Audit Closure Notification",
            "body": "Email body text",
            "recipients": ["primary.contact@company.com"]
        },
        "escalation": {
            "subject": "Audit Escalation Required",
            "body": "Email body text",
            "recipients": ["manager@company.com"]
        }
    },
    "recommended_type": "completion"
}

Query: %s
Type: %s
Audit: %s

Return only JSON:
`
