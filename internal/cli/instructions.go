package cli

import "fmt"

func (a *App) printEnableLoggingInstructions(cluster string) {
	fmt.Fprintln(a.Out, "\nTo enable EKS cluster logging:")

	fmt.Fprintln(a.Out, "\n1. Using the AWS Console:")
	fmt.Fprintln(a.Out, "   - Go to the Amazon EKS Console")
	fmt.Fprintf(a.Out, "   - Select cluster: %s\n", cluster)
	fmt.Fprintln(a.Out, "   - Go to the 'Observability' tab")
	fmt.Fprintln(a.Out, "   - Click 'Manage logging'")
	fmt.Fprintln(a.Out, "   - Enable desired log types (api, audit, authenticator, controllerManager, scheduler)")
	fmt.Fprintln(a.Out, "   - Click 'Save changes'")

	fmt.Fprintln(a.Out, "\n2. Using the AWS CLI:")
	fmt.Fprintln(a.Out, "   aws eks update-cluster-config \\")
	fmt.Fprintf(a.Out, "     --region %s \\\n", a.Config.Region)
	fmt.Fprintf(a.Out, "     --name %s \\\n", cluster)
	fmt.Fprintln(a.Out, "     --logging '{")
	fmt.Fprintln(a.Out, `       "clusterLogging":[{`)
	fmt.Fprintln(a.Out, `         "types":["api","audit","authenticator","controllerManager","scheduler"],`)
	fmt.Fprintln(a.Out, `         "enabled":true`)
	fmt.Fprintln(a.Out, "       }]")
	fmt.Fprintln(a.Out, "     }'")

	fmt.Fprintln(a.Out, statusStyle.Render("\nNote: after enabling, wait 5-10 minutes for logs to start appearing."))
}
