package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	outreachdto "microhub/internal/modules/outreach/dto"
)

func newContactCmd(flags *globalFlags) *cobra.Command {
	contact := &cobra.Command{Use: "contact", Short: "Send prefilled WhatsApp messages to the team"}

	send := func(cmd *cobra.Command, do func(ctx context.Context, app sender) (outreachdto.SendOutput, error)) error {
		app, err := loadApp(flags, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer app.Close()
		out, err := do(cmd.Context(), app.OutreachCLI)
		if err != nil {
			return err
		}
		if out.Notice != "" {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Notice)
		}
		printWarning(cmd.ErrOrStderr(), out.Warning)
		return nil
	}

	var join outreachdto.JoinInput
	joinCmd := &cobra.Command{
		Use:   "join",
		Short: "Ask to join the learning community",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return send(cmd, func(ctx context.Context, s sender) (outreachdto.SendOutput, error) {
				return s.Join(ctx, join)
			})
		},
	}
	joinCmd.Flags().StringVar(&join.WhatToLearn, "learn", "", "what you want to learn")
	joinCmd.Flags().StringVar(&join.Age, "age", "", "your age")
	joinCmd.Flags().StringVar(&join.WhyChooseUs, "why", "", "why you chose us")

	var cert outreachdto.CertificateInput
	certCmd := &cobra.Command{
		Use:   "certificate",
		Short: "Request a completion certificate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return send(cmd, func(ctx context.Context, s sender) (outreachdto.SendOutput, error) {
				return s.Certificate(ctx, cert)
			})
		},
	}
	certCmd.Flags().StringVar(&cert.FullName, "name", "", "full name")
	certCmd.Flags().StringVar(&cert.CourseCompleted, "course", "", "course completed")
	certCmd.Flags().StringVar(&cert.WhatsAppNumber, "phone", "", "WhatsApp number")
	certCmd.Flags().StringVar(&cert.DateCompleted, "date", "", "date completed")
	certCmd.Flags().IntVar(&cert.Rating, "rating", 0, "rating from 1 to 5")
	certCmd.Flags().StringVar(&cert.Feedback, "feedback", "", "feedback")

	var partner outreachdto.PartnershipInput
	partnerCmd := &cobra.Command{
		Use:   "partnership",
		Short: "Propose a partnership",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return send(cmd, func(ctx context.Context, s sender) (outreachdto.SendOutput, error) {
				return s.Partnership(ctx, partner)
			})
		},
	}
	partnerCmd.Flags().StringVar(&partner.FullName, "name", "", "full name")
	partnerCmd.Flags().StringVar(&partner.OrganizationName, "org", "", "organization name")
	partnerCmd.Flags().StringVar(&partner.OfficialTitle, "title", "", "official title")
	partnerCmd.Flags().StringVar(&partner.Phone, "phone", "", "phone number")
	partnerCmd.Flags().StringVar(&partner.Email, "email", "", "email")
	partnerCmd.Flags().StringSliceVar(&partner.PartnershipTypes, "type", nil, "partnership types")
	partnerCmd.Flags().StringVar(&partner.Description, "description", "", "proposal description")
	partnerCmd.Flags().StringVar(&partner.Website, "website", "", "website")

	var group outreachdto.GroupRegistrationInput
	groupCmd := &cobra.Command{
		Use:   "group",
		Short: "Register a learning group",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return send(cmd, func(ctx context.Context, s sender) (outreachdto.SendOutput, error) {
				return s.Group(ctx, group)
			})
		},
	}
	groupCmd.Flags().StringVar(&group.GroupName, "group-name", "", "group name")
	groupCmd.Flags().StringVar(&group.RepresentativeName, "representative", "", "representative name")
	groupCmd.Flags().StringVar(&group.Phone, "phone", "", "phone number")
	groupCmd.Flags().StringVar(&group.Email, "email", "", "email")
	groupCmd.Flags().StringVar(&group.SelectedCourses, "courses", "", "selected courses")
	groupCmd.Flags().StringVar(&group.Members, "members", "", "member names, one per line")

	var request outreachdto.AccessRequestInput
	requestCmd := &cobra.Command{
		Use:   "request",
		Short: "Request course access",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return send(cmd, func(ctx context.Context, s sender) (outreachdto.SendOutput, error) {
				return s.Request(ctx, request)
			})
		},
	}
	requestCmd.Flags().StringVar(&request.Type, "type", "individual", "individual or group")
	requestCmd.Flags().StringVar(&request.FullName, "name", "", "full name")
	requestCmd.Flags().StringVar(&request.Email, "email", "", "email")
	requestCmd.Flags().StringVar(&request.Phone, "phone", "", "phone number")
	requestCmd.Flags().StringVar(&request.Courses, "courses", "", "courses of interest")
	requestCmd.Flags().StringVar(&request.Reason, "reason", "", "reason for the request")

	var pricing outreachdto.GroupPricingInput
	pricingCmd := &cobra.Command{
		Use:   "group-pricing",
		Short: "Ask for institutional pricing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return send(cmd, func(ctx context.Context, s sender) (outreachdto.SendOutput, error) {
				return s.GroupPricing(ctx, pricing)
			})
		},
	}
	pricingCmd.Flags().StringVar(&pricing.Name, "name", "", "contact name")
	pricingCmd.Flags().StringVar(&pricing.Institution, "institution", "", "institution")
	pricingCmd.Flags().StringVar(&pricing.Phone, "phone", "", "phone number")
	pricingCmd.Flags().StringVar(&pricing.NumberOfLearners, "learners", "", "number of learners")
	pricingCmd.Flags().StringVar(&pricing.CourseInterest, "courses", "", "courses of interest")
	pricingCmd.Flags().StringVar(&pricing.AdditionalInfo, "info", "", "additional information")

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Print the team's WhatsApp contact",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.Close()
			c := app.OutreachCLI.Contact(cmd.Context())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "WhatsApp: %s\nchat: %s\n", c.DisplayPhone, c.ChatLink)
			return nil
		},
	}

	contact.AddCommand(joinCmd, certCmd, partnerCmd, groupCmd, requestCmd, pricingCmd, infoCmd)
	return contact
}

type sender interface {
	Join(ctx context.Context, input outreachdto.JoinInput) (outreachdto.SendOutput, error)
	Certificate(ctx context.Context, input outreachdto.CertificateInput) (outreachdto.SendOutput, error)
	Partnership(ctx context.Context, input outreachdto.PartnershipInput) (outreachdto.SendOutput, error)
	Group(ctx context.Context, input outreachdto.GroupRegistrationInput) (outreachdto.SendOutput, error)
	Request(ctx context.Context, input outreachdto.AccessRequestInput) (outreachdto.SendOutput, error)
	GroupPricing(ctx context.Context, input outreachdto.GroupPricingInput) (outreachdto.SendOutput, error)
}
