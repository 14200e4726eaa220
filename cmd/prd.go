package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	v1 "github.com/emrgen/prd/apis/v1"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "comment commands",
}

func init() {
	rootCmd.AddCommand(syncUserCmd())
	rootCmd.AddCommand(createPRDCmd())
	rootCmd.AddCommand(getPRDCmd())
	rootCmd.AddCommand(listPRDsCmd())
	rootCmd.AddCommand(regeneratePRDCmd())
	rootCmd.AddCommand(listVersionsCmd())
	rootCmd.AddCommand(deletePRDCmd())

	rootCmd.AddCommand(commentCmd)
	commentCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	commentCmd.AddCommand(addCommentCmd())
	commentCmd.AddCommand(listCommentsCmd())
}

func syncUserCmd() *cobra.Command {
	var email string
	var name string

	var required = []string{"email"}

	command := &cobra.Command{
		Use:     "sync",
		Short:   "create or refresh the user of the current token",
		Example: "prd sync -e <email> -n <name>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ctx, err := dial()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			res, err := client.SyncUser(ctx, &v1.SyncUserRequest{Email: email, Name: name})
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("user synced with id: %s", res.User.Id)
		},
	}

	command.Flags().StringVarP(&email, "email", "e", "", "email (required)")
	command.Flags().StringVarP(&name, "name", "n", "", "display name")

	return command
}

func createPRDCmd() *cobra.Command {
	var title string
	var description string
	var techStack []string
	var pages []string

	var required = []string{"title", "description", "stack", "page"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "generate and store a prd",
		Long:    `generate a project requirement document from the project description and store it`,
		Example: `prd create -t "Chat App" -d "A realtime chat tool" -s React,Node.js -p "Inbox:Lists conversations" -p "Settings:Edit profile"`,
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			req := &v1.CreatePRDRequest{ProjectInput: v1.ProjectInput{
				Title:              title,
				ProjectDescription: description,
				TechStack:          techStack,
			}}
			for _, page := range pages {
				parsed, err := parsePage(page)
				if err != nil {
					color.Red("%v", err)
					return
				}
				req.Pages = append(req.Pages, parsed)
			}

			client, ctx, err := dial()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			res, err := client.CreatePRD(ctx, req)
			if err != nil {
				logrus.Error(err)
				return
			}
			if !res.Success {
				color.Red("%s", res.Error)
				return
			}

			logrus.Infof("prd created with id: %s", res.PrdId)
		},
	}

	command.Flags().StringVarP(&title, "title", "t", "", "project title (required)")
	command.Flags().StringVarP(&description, "description", "d", "", "project description (required)")
	command.Flags().StringSliceVarP(&techStack, "stack", "s", nil, "tech stack, comma separated (required)")
	command.Flags().StringArrayVarP(&pages, "page", "p", nil, "page as name:functionality, repeatable (required)")

	command.Flags().SortFlags = false

	return command
}

// parsePage reads a page given as "name:functionality".
func parsePage(value string) (*v1.Page, error) {
	name, functionality, ok := strings.Cut(value, ":")
	name, functionality = strings.TrimSpace(name), strings.TrimSpace(functionality)
	if !ok || name == "" || functionality == "" {
		return nil, fmt.Errorf("invalid page %q, expected name:functionality", value)
	}
	return &v1.Page{Name: name, Functionality: functionality}, nil
}

func getPRDCmd() *cobra.Command {
	var prdID string
	var version int32
	var showMarkdown bool

	var required = []string{"prd-id"}

	command := &cobra.Command{
		Use:     "get",
		Short:   "get a prd",
		Example: "prd get -i <prd-id> -v <version> --markdown",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ctx, err := dial()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			// return from the versions if a version is provided
			if version > 0 {
				res, err := client.GetVersion(ctx, &v1.GetVersionRequest{PrdId: prdID, VersionNumber: version})
				if err != nil {
					logrus.Error(err)
					return
				}

				printField("Version", strconv.Itoa(int(res.Version.VersionNumber)))
				printField("Created", res.Version.CreatedAt.Format(time.RFC3339))
				fmt.Println(res.Version.MarkdownContent)
				return
			}

			res, err := client.GetPRD(ctx, &v1.GetPRDRequest{PrdId: prdID, IncludeSections: true, IncludeContent: showMarkdown})
			if err != nil {
				logrus.Error(err)
				return
			}

			prd := res.Prd
			printField("ID", prd.Id)
			printField("Title", prd.Title)
			printField("Status", string(prd.Status))
			printField("Tech stack", strings.Join(prd.TechStack, ", "))
			printField("Public", strconv.FormatBool(prd.IsPublic))
			printField("Last edited", prd.LastEditedAt.Format(time.RFC3339))

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Order", "Page", "Functionality"})
			for _, section := range prd.Sections {
				table.Append([]string{strconv.Itoa(int(section.Order)), section.Title, section.Content})
			}
			table.Render()

			if showMarkdown && prd.CurrentContent != nil {
				fmt.Println(prd.CurrentContent.MarkdownContent)
			}
		},
	}

	command.Flags().StringVarP(&prdID, "prd-id", "i", "", "prd id (required)")
	command.Flags().Int32VarP(&version, "version", "v", 0, "version of the prd")
	command.Flags().BoolVar(&showMarkdown, "markdown", false, "print the generated document")

	return command
}

func listPRDsCmd() *cobra.Command {
	var statuses []string
	var search string
	var skip int32
	var take int32

	command := &cobra.Command{
		Use:     "list",
		Short:   "list your prds",
		Example: "prd list --status DRAFT --search chat",
		Run: func(cmd *cobra.Command, args []string) {
			client, ctx, err := dial()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			req := &v1.ListPRDsRequest{Search: search, Skip: skip, Take: take}
			for _, st := range statuses {
				req.Status = append(req.Status, v1.PRDStatus(strings.ToUpper(st)))
			}

			res, err := client.ListPRDs(ctx, req)
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Title", "Status", "Pages", "Updated"})
			for _, prd := range res.Prds {
				table.Append([]string{prd.Id, prd.Title, string(prd.Status), strconv.Itoa(int(prd.PageCount)), prd.UpdatedAt.Format(time.RFC3339)})
			}
			table.SetFooter([]string{"", "", "", "Total", strconv.FormatInt(res.Total, 10)})
			table.Render()
		},
	}

	command.Flags().StringSliceVar(&statuses, "status", nil, "filter by status (DRAFT, COMPLETED, ARCHIVED)")
	command.Flags().StringVar(&search, "search", "", "search title and description")
	command.Flags().Int32Var(&skip, "skip", 0, "number of prds to skip")
	command.Flags().Int32Var(&take, "take", 0, "number of prds to return")

	return command
}

func regeneratePRDCmd() *cobra.Command {
	var prdID string

	var required = []string{"prd-id"}

	command := &cobra.Command{
		Use:     "regenerate",
		Short:   "generate the document of a prd again",
		Example: "prd regenerate -i <prd-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ctx, err := dial()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			res, err := client.RegeneratePRD(ctx, &v1.RegeneratePRDRequest{PrdId: prdID})
			if err != nil {
				logrus.Error(err)
				return
			}

			if res.Snapshot != nil {
				logrus.Infof("previous document kept as version %d", res.Snapshot.VersionNumber)
			}
			logrus.Infof("prd %s regenerated", res.Prd.Id)
		},
	}

	command.Flags().StringVarP(&prdID, "prd-id", "i", "", "prd id (required)")

	return command
}

func listVersionsCmd() *cobra.Command {
	var prdID string
	var snapshot bool

	var required = []string{"prd-id"}

	command := &cobra.Command{
		Use:     "versions",
		Short:   "list the versions of a prd",
		Example: "prd versions -i <prd-id> --snapshot",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ctx, err := dial()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			if snapshot {
				res, err := client.CreateVersion(ctx, &v1.CreateVersionRequest{PrdId: prdID})
				if err != nil {
					logrus.Error(err)
					return
				}
				logrus.Infof("created version %d", res.Version.VersionNumber)
			}

			res, err := client.ListVersions(ctx, &v1.ListVersionsRequest{PrdId: prdID})
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Version", "Created"})
			for _, version := range res.Versions {
				table.Append([]string{strconv.Itoa(int(version.VersionNumber)), version.CreatedAt.Format(time.RFC3339)})
			}
			table.Render()
		},
	}

	command.Flags().StringVarP(&prdID, "prd-id", "i", "", "prd id (required)")
	command.Flags().BoolVar(&snapshot, "snapshot", false, "save the current state as a new version first")

	return command
}

func deletePRDCmd() *cobra.Command {
	var prdID string

	var required = []string{"prd-id"}

	command := &cobra.Command{
		Use:     "delete",
		Short:   "delete a prd",
		Example: "prd delete -i <prd-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ctx, err := dial()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			if _, err := client.DeletePRD(ctx, &v1.DeletePRDRequest{PrdId: prdID}); err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("prd %s deleted", prdID)
		},
	}

	command.Flags().StringVarP(&prdID, "prd-id", "i", "", "prd id (required)")

	return command
}

func addCommentCmd() *cobra.Command {
	var prdID string
	var content string

	var required = []string{"prd-id", "content"}

	command := &cobra.Command{
		Use:     "add",
		Short:   "comment on a prd",
		Example: "prd comment add -i <prd-id> -c <content>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ctx, err := dial()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			res, err := client.AddComment(ctx, &v1.AddCommentRequest{PrdId: prdID, Content: content})
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("comment added with id: %s", res.Comment.Id)
		},
	}

	command.Flags().StringVarP(&prdID, "prd-id", "i", "", "prd id (required)")
	command.Flags().StringVarP(&content, "content", "c", "", "comment (required)")

	return command
}

func listCommentsCmd() *cobra.Command {
	var prdID string

	var required = []string{"prd-id"}

	command := &cobra.Command{
		Use:     "list",
		Short:   "list the comments on a prd",
		Example: "prd comment list -i <prd-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ctx, err := dial()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			res, err := client.ListComments(ctx, &v1.ListCommentsRequest{PrdId: prdID})
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Author", "Comment", "Created"})
			for _, comment := range res.Comments {
				table.Append([]string{comment.Id, comment.AuthorId, comment.Content, comment.CreatedAt.Format(time.RFC3339)})
			}
			table.Render()
		},
	}

	command.Flags().StringVarP(&prdID, "prd-id", "i", "", "prd id (required)")

	return command
}

func printField(label, value string) {
	color.Set(color.FgCyan)
	fmt.Print(label)
	color.Unset()
	fmt.Printf(": %s\n", value)
}

// checkMissingFlags checks if the required flags are set and returns ok if they are set
func checkMissingFlags(cmd *cobra.Command, flags []string) bool {
	var missingFlags []string
	var providedFlags []string
	for _, required := range flags {
		if !cmd.Flag(required).Changed {
			missingFlags = append(missingFlags, required)
		} else {
			value := cmd.Flag(required).Value.String()
			providedFlags = append(providedFlags, fmt.Sprintf("--%s=%s", required, value))
		}
	}

	if len(missingFlags) > 0 {
		var msg string
		for _, f := range missingFlags {
			msg += fmt.Sprintf("--%s ", f)
		}

		color.Red("missing: %s\n", msg)
		if len(providedFlags) > 0 {
			provided := strings.Join(providedFlags, " ")
			color.Green("provide: %s\n", provided)
		}

		cmd.Println("")

		_ = cmd.Usage()

		return true
	}

	return false
}
