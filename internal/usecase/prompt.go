package usecase

import (
	"fmt"
	"strings"
)

const analystPersona = "You are an expert Kubernetes and EKS cluster analyst. " +
	"You have access to EKS cluster logs and can answer detailed questions about " +
	"cluster activities, API requests, authentication, pod scheduling, and security events."

func buildAnalysisPrompt(persona, contextBody string) string {
	return strings.Join([]string{
		persona,
		"",
		contextBody,
		"",
		"Provide specific, detailed answers based on the actual log data above. " +
			"Reference specific timestamps, log types, and events in your responses. " +
			"If you see patterns or anomalies, point them out.",
	}, "\n")
}

func buildGeneralPrompt(cluster, inventory string) string {
	var b strings.Builder
	b.WriteString("You are an expert on Amazon EKS (Elastic Kubernetes Service) and Kubernetes.\n")
	b.WriteString("You help users understand EKS concepts, troubleshoot issues, and provide best practices.\n")
	if cluster != "" {
		fmt.Fprintf(&b, "\nThe user is working with EKS cluster: %s", cluster)
	}
	if inventory != "" {
		b.WriteString(inventory)
		b.WriteString("\nWhen asked about the user's clusters, use the ACTUAL AWS data provided above.")
	}
	b.WriteString("\n\nProvide detailed, practical answers about:\n")
	b.WriteString(strings.Join([]string{
		"- EKS architecture and components",
		"- Kubernetes concepts and operations",
		"- Troubleshooting and debugging",
		"- Security and IAM",
		"- Networking and service mesh",
		"- Best practices and recommendations",
		"- AWS-specific Kubernetes features",
	}, "\n"))
	return b.String()
}
